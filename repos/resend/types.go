package resend

// AccessRequest is the payload for claiming admin panel access.
type AccessRequest struct {
	Email string `json:"email" binding:"required,email"`
}
