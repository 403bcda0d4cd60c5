package login

import "github.com/bytetechedu/bytetech/internal/api"

// loginDoneMsg is sent when the login call resolves.
type loginDoneMsg struct {
	Resp *api.AuthResponse
	Err  error
}

// registerDoneMsg is sent when the register call resolves. A nil Resp
// with nil Err means the account needs email verification first.
type registerDoneMsg struct {
	Resp *api.AuthResponse
	Err  error
}

// verifyDoneMsg is sent when the verification-code call resolves.
type verifyDoneMsg struct {
	Resp *api.AuthResponse
	Err  error
}
