// Package validation turns invalid request input into ValidationFailed errors
// carrying one {field, reason} pair per problem.
//
// # Struct Tag Validation
//
//	type RegisterRequest struct {
//	    Nome  string `json:"nome" validate:"required"`
//	    Senha string `json:"senha" validate:"required,min=6"`
//	}
//	err := validation.ValidateStruct(req)
//
// Field names are the Go field names with any nesting prefix stripped, and
// reasons are the failing rule (required, email, min=6).
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(!exists, "Email", "already_registered")
//	err := v.Validate()
package validation
