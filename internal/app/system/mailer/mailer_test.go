package mailer

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testInvitation() InvitationEmailData {
	return InvitationEmailData{
		SiteName:     "TeamHub",
		TeamName:     "Rockets",
		FirstName:    "Ada",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		TempPassword: "Tmp9Pass4Word",
		ConfirmLink:  "http://localhost:3000/api/users/abc/confirmation?token=xyz",
		ExpiresIn:    "3 days",
	}
}

func TestBuildInvitationEmail(t *testing.T) {
	e := BuildInvitationEmail(testInvitation())

	if e.To != "ada@example.com" {
		t.Errorf("To: got %q", e.To)
	}
	if !strings.Contains(e.Subject, "Rockets") {
		t.Errorf("subject should name the team, got %q", e.Subject)
	}
	for _, body := range []string{e.TextBody, e.HTMLBody} {
		if !strings.Contains(body, "Tmp9Pass4Word") {
			t.Error("body should carry the temporary password")
		}
		if !strings.Contains(body, "3 days") {
			t.Error("body should carry the expiry")
		}
	}
	if !strings.Contains(e.TextBody, "http://localhost:3000/api/users/abc/confirmation?token=xyz") {
		t.Error("text body should carry the confirmation link verbatim")
	}
	if !strings.Contains(e.HTMLBody, "confirmation?token=xyz") {
		t.Error("html body should carry the confirmation link")
	}
}

func TestBuildInvitationEmail_EscapesHTML(t *testing.T) {
	data := testInvitation()
	data.TeamName = "<script>x</script>"
	e := BuildInvitationEmail(data)
	if strings.Contains(e.HTMLBody, "<script>x</script>") {
		t.Error("team name must be escaped in html body")
	}
}

func TestBuildMessage_Multipart(t *testing.T) {
	m := New(Config{Host: "localhost", Port: 1025, From: "noreply@teamhub.test", FromName: "TeamHub"}, zap.NewNop())
	msg, err := m.buildMessage(BuildInvitationEmail(testInvitation()))
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}
	s := string(msg)
	for _, want := range []string{
		"To: Ada Lovelace <ada@example.com>\r\n",
		"MIME-Version: 1.0\r\n",
		"multipart/alternative; boundary=",
		"@teamhub.test>",
		"text/plain",
		"text/html",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessage_PlainText(t *testing.T) {
	m := New(Config{Host: "localhost", Port: 1025, From: "noreply@teamhub.test"}, zap.NewNop())
	msg, err := m.buildMessage(Email{To: "a@b.c", Subject: "Hi", TextBody: "hello"})
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}
	s := string(msg)
	if strings.Contains(s, "multipart") {
		t.Error("text-only message should not be multipart")
	}
	if !strings.Contains(s, "To: a@b.c\r\n") {
		t.Error("bare address expected when no display name is set")
	}
	if !strings.HasSuffix(s, "\r\n\r\nhello") {
		t.Errorf("unexpected body layout: %q", s)
	}
}

func TestSend_EmptyRecipient(t *testing.T) {
	m := New(Config{Host: "localhost", Port: 1025}, zap.NewNop())
	if err := m.Send(t.Context(), Email{Subject: "x", TextBody: "y"}); err == nil {
		t.Error("expected error for empty recipient")
	}
}
