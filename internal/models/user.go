package models

// User is an account owning habits. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// Result is the outcome of a mutation as seen by callers outside the data layer.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Ok returns a successful Result with an optional message.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail returns a failed Result carrying message.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
