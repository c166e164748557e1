package handlers

import (
	"fmt"
	"net/http"
)

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

func (h *DocsHandler) ServePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head><title>ZenFlow Privacy Policy</title></head>
<body>
    <h1>Privacy Policy</h1>
    <p>ZenFlow stores your email address, profile details and routine
    completion history to compute your practice streaks and send the
    reminders you opted into.</p>
    <p>We never sell your data. You can delete your account and all of
    its data at any time from the profile screen.</p>
</body>
</html>
	`)
}

func (h *DocsHandler) ServeTermsOfServices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head><title>ZenFlow Terms of Service</title></head>
<body>
    <h1>Terms of Service</h1>
    <p>ZenFlow is a wellness companion, not medical advice. Practice
    within your limits and consult a professional where needed.</p>
    <p>Accounts that abuse the service may be removed.</p>
</body>
</html>
	`)
}
