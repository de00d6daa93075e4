package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

var submittedAt = time.Date(2026, time.October, 16, 14, 5, 9, 0, time.UTC)

func TestFormat_FullLayout(t *testing.T) {
	s, err := schema.Parse([]byte(`
title: Mini
report:
  title: MINI REPORT
  width: 10
sections:
  - ordinal: 1
    id: one
    title: Basics
    fields:
      - {id: name, kind: text}
      - {id: pw, kind: password}
      - {id: ok, kind: checkbox}
      - {id: other, kind: text}
      - {id: fee, kind: number}
      - {id: openHour, kind: select, options: [{value: "9"}]}
      - {id: openMinute, kind: select, options: [{value: "00"}]}
      - {id: openPeriod, kind: select, options: [{value: AM}]}
      - {id: shutHour, kind: select, options: [{value: "5"}]}
      - {id: shutMinute, kind: select, options: [{value: "30"}]}
      - {id: shutPeriod, kind: select, options: [{value: PM}]}
      - {id: shut, kind: checkbox}
    report:
      - {field: name, label: Name}
      - {field: pw, label: Password}
      - {kind: blank}
      - {kind: heading, label: Flags}
      - {field: ok, label: OK, indent: 1}
      - {kind: optional, field: other, label: Other, indent: 1}
      - {field: fee, label: Fee, prefix: "$", suffix: " total"}
      - {kind: hours, label: Weekdays, from: open, to: shut, closed: shut}
  - ordinal: 2
    id: two
    title: End
    fields:
      - {id: sig, kind: text}
    report:
      - {field: sig, label: Signature}
`), "mini.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	answers := form.AnswerMap{
		"name":       "Acme",
		"pw":         "secret123",
		"ok":         "No",
		"openHour":   "9",
		"openMinute": "00",
		"openPeriod": "AM",
		"shutHour":   "5",
		"shutMinute": "30",
		"shut":       "No",
	}

	want := strings.Join([]string{
		"==========",
		"MINI REPORT",
		"==========",
		"",
		"Submission Date: 10/16/2026, 2:05:09 PM",
		"",
		"----------",
		"SECTION 1: BASICS",
		"----------",
		"Name: Acme",
		"Password: ***HIDDEN***",
		"",
		"Flags:",
		"  OK: No",
		"Fee: $N/A total",
		"Weekdays: 9:00 AM to N/A",
		"",
		"----------",
		"SECTION 2: END",
		"----------",
		"Signature: N/A",
		"",
		"==========",
		"END OF QUESTIONNAIRE",
		"==========",
		"",
	}, "\n")

	got := report.New(s).Format(answers, submittedAt)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	if again := report.New(s).Format(answers, submittedAt); again != got {
		t.Fatalf("report is not deterministic")
	}
}

func clinicReport(t *testing.T, answers form.AnswerMap) string {
	t.Helper()
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	return report.New(s).Format(answers, submittedAt)
}

func assertLine(t *testing.T, out, line string) {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if l == line {
			return
		}
	}
	t.Fatalf("missing line %q in report:\n%s", line, out)
}

func refuteLinePrefix(t *testing.T, out, prefix string) {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) {
			t.Fatalf("unexpected line %q", l)
		}
	}
}

func TestFormat_ClinicScenarios(t *testing.T) {
	out := clinicReport(t, form.AnswerMap{
		"clinicName":             "Acme Clinic",
		"saturdayClosed":         "Yes",
		"saturdayFromHour":       "9",
		"saturdayFromMinute":     "00",
		"saturdayFromPeriod":     "AM",
		"sundayClosed":           "No",
		"mondayFridayFromHour":   "9",
		"mondayFridayFromMinute": "30",
		"mondayFridayFromPeriod": "AM",
		"mondayFridayToHour":     "6",
		"mondayFridayToMinute":   "00",
		"mondayFridayToPeriod":   "PM",
		"adminPassword":          "secret123",
		"collectAge":             "Yes",
		"faqOther1":              "We accept cards",
		"appointmentDuration":    "30",
	})

	assertLine(t, out, "MEDICAL CLINIC WHATSAPP AI CHATBOT - PROJECT QUESTIONNAIRE")
	assertLine(t, out, "SECTION 9: PAYMENT & TERMS")
	assertLine(t, out, "Clinic Name: Acme Clinic")
	assertLine(t, out, "Owner/Doctor Name: N/A")
	assertLine(t, out, "Operating Hours:")
	assertLine(t, out, "  Monday-Friday: 9:30 AM to 6:00 PM")
	assertLine(t, out, "  Saturday: Closed")
	assertLine(t, out, "  Sunday: N/A to N/A")
	assertLine(t, out, "Appointment Duration: 30 minutes")
	assertLine(t, out, "Consultation Fee: ₹N/A")
	assertLine(t, out, "Notice Required: N/A hours")
	assertLine(t, out, "Admin Password: ***HIDDEN***")
	assertLine(t, out, "  Age: Yes")
	assertLine(t, out, "  Full Name: No")
	assertLine(t, out, "  Other 1: We accept cards")
	assertLine(t, out, "Terms Agreed: No")
	refuteLinePrefix(t, out, "  Other 2:")

	if strings.Contains(out, "secret123") {
		t.Fatalf("password leaked into report")
	}
}

func TestFormat_PasswordAbsent(t *testing.T) {
	out := clinicReport(t, form.AnswerMap{})
	assertLine(t, out, "Admin Password: N/A")
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		h, m, p, want string
	}{
		{"9", "00", "AM", "9:00 AM"},
		{"12", "45", "PM", "12:45 PM"},
		{"", "00", "AM", "N/A"},
		{"9", "", "AM", "N/A"},
		{"9", "00", "", "N/A"},
	}
	for _, tc := range cases {
		if got := report.FormatTime(tc.h, tc.m, tc.p); got != tc.want {
			t.Fatalf("FormatTime(%q,%q,%q) = %q want %q", tc.h, tc.m, tc.p, got, tc.want)
		}
	}
}

func TestSensitive(t *testing.T) {
	s, _ := schema.Default()
	if diff := cmp.Diff([]string{"adminPassword"}, report.Sensitive(s)); diff != "" {
		t.Fatalf("sensitive ids mismatch:\n%s", diff)
	}
}
