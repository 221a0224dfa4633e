package handler // handler defines http handlers

import "github.com/go-playground/validator/v10"

// validate checks request bodies carrying `validate` struct tags.
var validate = validator.New()
