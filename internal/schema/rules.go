package schema

// Validator tags applied to fields of partial (PATCH) bodies. They match the
// struct tags on the full bodies.
const (
	PostTitleRule   = "required,max=100"
	PostContentRule = "required,min=50"
	UsernameRule    = "required,max=50"
	EmailRule       = "required,email,max=120"
	ImageFileRule   = "max=255,filename"
)
