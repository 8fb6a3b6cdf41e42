package printing

const ticketTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Order.OrderNumber}}</title>
<style>
  body { font-family: "DejaVu Sans Mono", monospace; width: 72mm; margin: 0 auto; font-size: 12px; }
  h1 { font-size: 16px; text-align: center; margin: 4px 0; }
  .meta { display: flex; justify-content: space-between; }
  table { width: 100%; border-collapse: collapse; margin-top: 6px; }
  td { padding: 2px 0; vertical-align: top; }
  td.qty { width: 3em; }
  td.amount { text-align: right; }
  tr.total td { border-top: 1px dashed #000; font-weight: bold; }
  .removed { font-style: italic; }
</style>
</head>
<body>
<h1>{{.Restaurant}}</h1>
<div class="meta"><span>{{.Order.OrderNumber}}</span><span>{{status .Order.Status}}</span></div>
<div class="meta"><span>{{.Order.CustomerName}}</span><span>{{if .Order.TableNumber}}Table {{deref .Order.TableNumber}}{{else}}Takeaway{{end}}</span></div>
<div>{{clock .Order.CreatedAt}}</div>
<table>
{{- range .Order.Items}}
  <tr>
    <td class="qty">{{.Quantity}}x</td>
    <td>{{if .MenuItem}}{{.MenuItem.Name}}{{with .MenuItem.PreparationTime}} ({{.}} min){{end}}{{else}}<span class="removed">Item no longer on menu</span>{{end}}</td>
    <td class="amount">{{lineTotal .}}</td>
  </tr>
{{- end}}
  <tr class="total"><td></td><td>{{integer .ItemCount}} items</td><td class="amount">{{money .Order.TotalAmount}}</td></tr>
</table>
</body>
</html>
`
