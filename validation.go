package toolbox

// Validatable is implemented by parameter models that need custom business validation.
// Called after schema validation and unmarshaling; a non-nil error becomes a ValidationError.
type Validatable interface {
	Validate() error
}

// validateCustom runs Validatable on the model pointer. Both value and pointer
// receivers are reachable through a pointer.
func validateCustom(params any) error {
	if v, ok := params.(Validatable); ok {
		return v.Validate()
	}
	return nil
}
