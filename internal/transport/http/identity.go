package http

import "net/http"

// The authentication collaborator in front of this service resolves the
// session and forwards the user id in this header. The core never sees
// credentials; an absent header means the request is unauthenticated.
const userIDHeader = "X-User-ID"

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "unauthorized user")
		return "", false
	}
	return userID, true
}
