package mailer

import "fmt"

const systemName = "Academic Early Warning System"

func verificationContent(link, name string) (subject, plain, html string) {
	subject = "Confirm your email - " + systemName
	plain = fmt.Sprintf(`Hello %s,

Before you can sign in, you must confirm your email address by clicking the link below:

%s

Your account will be active only after you click this confirmation link. The link expires in 24 hours. If you did not create an account, you can ignore this email.

— %s
`, name, link, systemName)
	html = buttonEmail("Confirm your email address",
		fmt.Sprintf("Hello %s,", name),
		"Before you can sign in, you must confirm your email by clicking the button below. Your account will be active only after you click this confirmation link.",
		"Confirm email", link,
		"This link expires in 24 hours. If you didn't create an account, you can safely ignore this email.")
	return subject, plain, html
}

func passwordResetContent(link, name string) (subject, plain, html string) {
	subject = "Reset your password - " + systemName
	plain = fmt.Sprintf(`Hello %s,

You requested a password reset. Click the link below to set a new password:

%s

This link expires in 1 hour. If you didn't request a reset, you can ignore this email.

— %s
`, name, link, systemName)
	html = buttonEmail("Reset your password",
		fmt.Sprintf("Hello %s,", name),
		"You requested a password reset. Click the button below to set a new password.",
		"Reset password", link,
		"This link expires in 1 hour. If you didn't request a reset, you can safely ignore this email.")
	return subject, plain, html
}

func accountDecisionContent(name string, approved bool) (subject, plain, html string) {
	if approved {
		subject = "Your account has been approved - " + systemName
		plain = fmt.Sprintf(`Hello %s,

An administrator has approved your account. You can now sign in.

— %s
`, name, systemName)
		html = noticeEmail("Account approved",
			fmt.Sprintf("Hello %s,", name),
			"An administrator has approved your account. You can now sign in.")
		return subject, plain, html
	}

	subject = "Your account request was declined - " + systemName
	plain = fmt.Sprintf(`Hello %s,

An administrator has declined your account request. Contact your department administrator if you believe this is a mistake.

— %s
`, name, systemName)
	html = noticeEmail("Account declined",
		fmt.Sprintf("Hello %s,", name),
		"An administrator has declined your account request. Contact your department administrator if you believe this is a mistake.")
	return subject, plain, html
}

func buttonEmail(heading, greeting, body, buttonLabel, link, footnote string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f5f5f5;">
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0">
    <tr><td align="center">
      <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="max-width:520px;background:#ffffff;border-radius:12px;overflow:hidden;">
        <tr><td style="padding:32px;text-align:center;background:#2563eb;">
          <h1 style="margin:0;font-size:20px;color:#ffffff;">%s</h1>
          <p style="margin:8px 0 0;font-size:14px;color:rgba(255,255,255,0.9);">%s</p>
        </td></tr>
        <tr><td style="padding:32px;">
          <p style="margin:0 0 16px;font-size:16px;color:#374151;">%s</p>
          <p style="margin:0 0 24px;font-size:15px;color:#6b7280;">%s</p>
          <p style="text-align:center;margin:0 0 24px;">
            <a href="%s" style="display:inline-block;padding:14px 28px;font-size:15px;font-weight:600;color:#ffffff;background:#2563eb;text-decoration:none;border-radius:8px;">%s</a>
          </p>
          <p style="margin:0;font-size:13px;color:#9ca3af;">%s</p>
          <p style="margin:16px 0 0;font-size:12px;color:#9ca3af;">If the button doesn't work, copy and paste this link into your browser:</p>
          <p style="margin:4px 0 0;font-size:12px;color:#3b82f6;word-break:break-all;">%s</p>
        </td></tr>
        <tr><td style="padding:16px 32px;background:#f9fafb;text-align:center;">
          <p style="margin:0;font-size:12px;color:#6b7280;">— %s</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`, systemName, heading, greeting, body, link, buttonLabel, footnote, link, systemName)
}

func noticeEmail(heading, greeting, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f5f5f5;">
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0">
    <tr><td align="center">
      <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="max-width:520px;background:#ffffff;border-radius:12px;overflow:hidden;">
        <tr><td style="padding:32px;text-align:center;background:#2563eb;">
          <h1 style="margin:0;font-size:20px;color:#ffffff;">%s</h1>
          <p style="margin:8px 0 0;font-size:14px;color:rgba(255,255,255,0.9);">%s</p>
        </td></tr>
        <tr><td style="padding:32px;">
          <p style="margin:0 0 16px;font-size:16px;color:#374151;">%s</p>
          <p style="margin:0;font-size:15px;color:#6b7280;">%s</p>
        </td></tr>
        <tr><td style="padding:16px 32px;background:#f9fafb;text-align:center;">
          <p style="margin:0;font-size:12px;color:#6b7280;">— %s</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`, systemName, heading, greeting, body, systemName)
}
