// Package models contains GORM persistence models. They carry all table
// and column annotations so the domain entities stay free of ORM tags;
// each model converts to and from its entity with ToDomain/FromDomain.
package models
