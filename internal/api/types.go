package api

// Sender identifies who produced a chat message.
type Sender string

// Sender constants.
const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message represents a single conversation message as stored on the server.
type Message struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// FileItem represents an uploaded document.
type FileItem struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	UploadTime string `json:"upload_time,omitempty"`
}

// ChatSession represents a past conversation in the session history list.
// FirstQuestion is used as its display label.
type ChatSession struct {
	SessionToken  string `json:"session_token"`
	FirstQuestion string `json:"first_question"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// credentials is the request body for login and register.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the success body of POST /login.
type loginResponse struct {
	SessionToken string `json:"session_token"`
}

// queryRequest is the body of POST /query. FileID is omitted entirely when
// the query is not scoped to a file.
type queryRequest struct {
	Question     string `json:"question"`
	SessionToken string `json:"session_token"`
	FileID       string `json:"file_id,omitempty"`
}

// queryResponse is the success body of POST /query.
type queryResponse struct {
	Answer string `json:"answer"`
}

// newSessionRequest is the body of POST /new-session.
type newSessionRequest struct {
	SessionToken string `json:"session_token"`
}

// newSessionResponse is the success body of POST /new-session.
type newSessionResponse struct {
	SessionToken string `json:"session_token"`
}

// uploadResponse is the body of POST /upload-and-embed, success or failure.
type uploadResponse struct {
	Message string `json:"message"`
}

// errorResponse covers the server's error bodies. Auth endpoints report
// through "detail", the upload endpoint through "message".
type errorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}
