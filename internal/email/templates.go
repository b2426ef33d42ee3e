package email

import (
	"fmt"
	"html"
)

// PasswordReset builds the reset-link email.
func PasswordReset(to, appURL, token string) Message {
	resetURL := fmt.Sprintf("%s/password/reset/%s", appURL, token)
	return Message{
		To:      to,
		Subject: "Reset your Vendora password",
		Text:    "Click here to reset your password: " + resetURL,
		HTML: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #1a56db;">Reset your Vendora password</h1>
  <p>We received a request to reset your password. Click the button below to create a new password:</p>
  <div style="text-align: center; margin: 20px 0;">
    <a href="` + html.EscapeString(resetURL) + `" style="background-color: #1a56db; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
  </div>
  <p>This link will expire in 1 hour.</p>
  <p>If you didn't request this password reset, please ignore this email.</p>
</div>`,
	}
}

// VerificationResult tells the user how their business verification was
// reviewed. reason is only used for rejections.
func VerificationResult(to string, approved bool, reason string) Message {
	if approved {
		return Message{
			To:      to,
			Subject: "Your Vendora business is verified",
			Text:    "Your business documents were approved. You can now send and receive funds.",
		}
	}
	text := "Your business documents could not be verified."
	if reason != "" {
		text += " Reason: " + reason
	}
	text += " Please upload new documents from your dashboard."
	return Message{
		To:      to,
		Subject: "Your Vendora verification needs attention",
		Text:    text,
		HTML:    "<p>" + html.EscapeString(text) + "</p>",
	}
}

// VerificationSubmitted acknowledges a KYC upload.
func VerificationSubmitted(to string) Message {
	return Message{
		To:      to,
		Subject: "We received your business documents",
		Text:    "Thanks for submitting your documents. We will email you once the review is complete.",
	}
}
