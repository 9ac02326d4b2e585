// Package dsl provides a builder for dynok objects.
//
// The builder only accumulates (name, value) pairs in order; validation and
// construction happen once, in Build, through dynok.NewProperty and
// dynok.NewObjectFrom. Nested builders may be passed as property values (or
// list elements) and are built first.
//
// Example
//
//	customer, err := dsl.Object("Customer").
//	    Property("id", int64(0)).
//	    Property("email", "george@green.fr").
//	    Property("premium", true).
//	    Property("yearsOfService", []int32{2020, 2021, 2022}).
//	    Object("employer", "Company", func(b *dsl.Builder) {
//	        b.Property("name", "Main Corp")
//	    }).
//	    Property("ownedCompanies", []*dsl.Builder{
//	        dsl.Object("Company").Property("name", "Acme"),
//	        dsl.Object("Company").Property("name", "Globex"),
//	    }).
//	    Build()
package dsl
