package systemcodes

const (
	ErrorCodeGeneric           = 3
	ErrorCodeNotFound          = 4
	ErrorCodeInvalidRepository = 5
)
