package main

import menuapp "github.com/restaurant/backend/internal/application/menu"

func item(name, description, category string, price int64, prep int, imageURL string, ingredients ...string) menuapp.CreateMenuItemRequest {
	p := money(price)
	return menuapp.CreateMenuItemRequest{
		Name:            name,
		Description:     description,
		Category:        category,
		Price:           &p,
		Ingredients:     ingredients,
		PreparationTime: &prep,
		ImageURL:        imageURL,
	}
}

// demoMenu is the sample catalog shipped with the project
var demoMenu = []menuapp.CreateMenuItemRequest{
	item("Garlic Bread", "Toasted bread topped with garlic and butter", "Appetizer", 120, 10,
		"https://www.mygingergarlickitchen.com/wp-content/rich-markup-images/1x1/1x1-garlic-bread.jpg",
		"Bread", "Butter", "Garlic"),
	item("Chicken Tikka", "Grilled chicken marinated in spices", "Appetizer", 220, 20,
		"", "Chicken", "Yogurt", "Spices"),
	item("Veg Manchurian", "Fried vegetable balls cooked in spicy sauce", "Appetizer", 150, 15,
		"https://www.cookshideout.com/wp-content/uploads/2014/11/Veg-Manchurian-Low-Fat-FI.jpg",
		"Cabbage", "Carrot", "Soy Sauce"),

	item("Margherita Pizza", "Classic cheese and tomato pizza", "Main Course", 300, 25,
		"", "Cheese", "Tomato", "Basil"),
	item("Chicken Biryani", "Aromatic basmati rice cooked with chicken", "Main Course", 250, 40,
		"", "Rice", "Chicken", "Spices"),
	item("Paneer Butter Masala", "Creamy paneer curry", "Main Course", 220, 20,
		"", "Paneer", "Butter", "Cream"),
	item("Veg Fried Rice", "Rice stir-fried with veggies", "Main Course", 150, 15,
		"", "Rice", "Carrot", "Beans", "Soy Sauce"),

	item("Brownie with Ice Cream", "Warm chocolate brownie served with vanilla ice cream", "Dessert", 180, 10,
		"https://recipesblob.oetker.in/assets/0e7149831748458c9502e361e889f726/1272x764/brownie-with-vanilla-ice-cream.webp",
		"Chocolate", "Sugar", "Ice Cream"),
	item("Gulab Jamun", "Soft sweet dumplings soaked in sugar syrup", "Dessert", 90, 8,
		"", "Milk Solids", "Sugar"),
	item("Cheesecake", "Creamy and smooth baked cheesecake", "Dessert", 220, 15,
		"https://www.kingarthurbaking.com/sites/default/files/2025-06/Easy-Cheesecake-6.jpg",
		"Cream Cheese", "Sugar", "Butter"),

	item("Cold Coffee", "Chilled coffee blended with milk", "Beverage", 120, 5,
		"https://deliciousmadeeasy.com/wp-content/uploads/2018/04/chocoholic-cold-brew-coffee-1-of-1-7-scaled.jpg",
		"Coffee", "Milk", "Sugar"),
	item("Fresh Lime Soda", "Sweet or salted refreshing lime drink", "Beverage", 60, 3,
		"", "Lime", "Soda", "Sugar"),
	item("Masala Chai", "Spiced Indian tea", "Beverage", 40, 5,
		"", "Tea", "Milk", "Spices"),
	item("Oreo Milkshake", "Creamy milkshake with crushed Oreos", "Beverage", 150, 7,
		"https://www.whiskaffair.com/wp-content/uploads/2020/07/Oreo-Milkshake-2-3.jpg",
		"Milk", "Oreo", "Ice Cream"),
}
