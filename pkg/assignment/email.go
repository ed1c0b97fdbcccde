package assignment

import (
	"blood-portal/entities"
	"bytes"
	htmltemplate "html/template"
	"text/template"
)

const assignmentSubject = "A donor has been assigned to your blood request"

type emailData struct {
	PatientName  string
	BloodGroup   string
	Units        int
	Hospital     string
	DonorName    string
	DonorEmail   string
	DonorPhone   string
	DonorGroup   string
	DashboardURL string
}

var assignmentHTML = htmltemplate.Must(htmltemplate.New("assignment.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2 style="color: #c0392b;">Donor assigned</h2>
  <p>A donor has been assigned to the request for <strong>{{.Units}} unit(s) of {{.BloodGroup}}</strong> blood for <strong>{{.PatientName}}</strong>{{if .Hospital}} at {{.Hospital}}{{end}}.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Donor</strong></td><td>{{.DonorName}}</td></tr>
    <tr><td><strong>Blood group</strong></td><td>{{.DonorGroup}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.DonorEmail}}</td></tr>
    {{if .DonorPhone}}<tr><td><strong>Phone</strong></td><td>{{.DonorPhone}}</td></tr>{{end}}
  </table>
  {{if .DashboardURL}}<p><a href="{{.DashboardURL}}">View the request</a></p>{{end}}
  <p>Please contact the donor to arrange the donation.</p>
</body>
</html>
`))

var assignmentText = template.Must(template.New("assignment.txt").Parse(`Donor assigned

A donor has been assigned to the request for {{.Units}} unit(s) of {{.BloodGroup}} blood for {{.PatientName}}{{if .Hospital}} at {{.Hospital}}{{end}}.

Donor: {{.DonorName}}
Blood group: {{.DonorGroup}}
Email: {{.DonorEmail}}
{{if .DonorPhone}}Phone: {{.DonorPhone}}
{{end}}{{if .DashboardURL}}
View the request: {{.DashboardURL}}
{{end}}
Please contact the donor to arrange the donation.
`))

// renderAssignmentEmail returns the html and plain text bodies sent to the
// requester once a donor is assigned.
func renderAssignmentEmail(request *entities.BloodRequest, donor *entities.User, appURL string) (string, string, error) {
	data := emailData{
		PatientName: request.PatientName,
		BloodGroup:  request.BloodGroup,
		Units:       request.Units,
		Hospital:    request.Hospital,
		DonorName:   donor.Name,
		DonorEmail:  donor.Email,
		DonorPhone:  donor.Phone,
		DonorGroup:  donor.BloodGroup,
	}
	if appURL != "" {
		data.DashboardURL = appURL + "/dashboard/blood-requests/" + request.ID.String()
	}

	var html, text bytes.Buffer
	if err := assignmentHTML.Execute(&html, data); err != nil {
		return "", "", err
	}
	if err := assignmentText.Execute(&text, data); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}
