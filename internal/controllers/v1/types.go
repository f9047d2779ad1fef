package v1

type URIID struct {
	ID uint `uri:"id" binding:"required"` // ID of the resource
}
