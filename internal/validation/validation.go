// Package validation binds request data and turns validation failures into
// 400 responses the client can understand.
//
// Request types implement Validatable. Validate may return a ready
// *errs.HTTPError, validator.ValidationErrors from struct tags, or
// CustomValidationErrors for rules tags cannot express.
package validation
