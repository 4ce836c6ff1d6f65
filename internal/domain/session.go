package domain

// Session holds the token pair minted by the PDS for one account.
// It is owned by the session manager and persisted through a
// SessionStore so a later invocation can skip login. A server reply
// carrying an error field is never materialized as a Session; the
// client surfaces it as a ProtocolError instead.
type Session struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Did        string `json:"did"`
	Handle     string `json:"handle"`
}

// Valid reports whether the session carries the fields every
// authenticated call needs.
func (s *Session) Valid() bool {
	return s != nil && s.AccessJwt != "" && s.RefreshJwt != "" && s.Did != ""
}
