package email

import "fmt"

// StudentWelcome builds the mail sent to a newly registered student.
func StudentWelcome(fullName, code string) (subject, html string) {
	subject = "Welcome to GNAAS"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h2 style="color: #1a3c6e;">Welcome to GNAAS, %s!</h2>
			<p>Your registration was successful. Your student code is:</p>
			<p style="font-size: 20px; font-weight: bold; letter-spacing: 1px;">%s</p>
			<p>Keep this code safe. You will use it whenever your records are looked up.</p>
			<p style="color: #888; font-size: 12px;">This is an automated message, please do not reply.</p>
		</div>`, fullName, code)
	return subject, html
}

// AttendanceRecorded builds the confirmation sent when someone is marked
// present and has an email on file.
func AttendanceRecorded(fullName, date string) (subject, html string) {
	subject = "Attendance recorded"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h2 style="color: #1a3c6e;">Hi %s</h2>
			<p>Your attendance for <b>%s</b> has been recorded. Thank you for coming!</p>
			<p style="color: #888; font-size: 12px;">This is an automated message, please do not reply.</p>
		</div>`, fullName, date)
	return subject, html
}

// SecretaryAccount builds the mail sent when an admin account is created for
// a secretary, carrying the temporary password.
func SecretaryAccount(fullName, email, tempPassword string) (subject, html string) {
	subject = "Your GNAAS secretary account"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
			<h2 style="color: #1a3c6e;">Hello %s</h2>
			<p>A secretary account has been created for you.</p>
			<p>Email: <b>%s</b><br>Temporary password: <b>%s</b></p>
			<p>Please sign in and change your password immediately.</p>
			<p style="color: #888; font-size: 12px;">This is an automated message, please do not reply.</p>
		</div>`, fullName, email, tempPassword)
	return subject, html
}
