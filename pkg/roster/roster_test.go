package roster

import (
	"strings"
	"testing"
)

func TestParseGuestsCsv(t *testing.T) {
	csv := strings.Join([]string{
		"Full Name,Designation,Company,Email,Image Name,Speaker,Moderator",
		"Jane Doe,CTO,Acme Corp,jane@acme.test,jane.png,yes,",
		"John Smith,,,,,no,x",
		",Orphan Row,,,,,",
		"Ana Lima,Analyst,,ana@acme.test,,1,",
	}, "\n")

	guests, err := ParseGuests(strings.NewReader(csv), "roster.csv")
	if err != nil {
		t.Fatalf("ParseGuests failed: %v", err)
	}

	if len(guests) != 3 {
		t.Fatalf("got %d guests, want 3 (empty-name row skipped)", len(guests))
	}

	jane := guests[0]
	if jane.Name != "Jane Doe" || jane.Title != "CTO" || jane.Organization != "Acme Corp" {
		t.Errorf("synonym columns not resolved: %+v", jane)
	}
	if jane.PhotoName != "jane.png" {
		t.Errorf("PhotoName = %q, want jane.png", jane.PhotoName)
	}
	if !jane.IsSpeaker || jane.IsModerator {
		t.Errorf("Jane flags = speaker:%v moderator:%v", jane.IsSpeaker, jane.IsModerator)
	}

	john := guests[1]
	if john.IsSpeaker || !john.IsModerator {
		t.Errorf("John flags = speaker:%v moderator:%v", john.IsSpeaker, john.IsModerator)
	}

	if !guests[2].IsSpeaker {
		t.Errorf("numeric truthy cell not recognized for %q", guests[2].Name)
	}
}

func TestParseGuestsMissingNameColumn(t *testing.T) {
	csv := "Designation,Company\nCTO,Acme"

	if _, err := ParseGuests(strings.NewReader(csv), "roster.csv"); err == nil {
		t.Fatal("expected error for roster without a name column")
	}
}

func TestParseGuestsUnsupportedExtension(t *testing.T) {
	if _, err := ParseGuests(strings.NewReader("x"), "roster.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestParseUsersCsv(t *testing.T) {
	csv := strings.Join([]string{
		"Email,Full Name,Role,Username",
		"alice@example.test,Alice,ADMIN,alice",
		"bob@example.test,Bob,,",
	}, "\n")

	users, err := ParseUsers(strings.NewReader(csv), "users.csv")
	if err != nil {
		t.Fatalf("ParseUsers failed: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Role != "admin" {
		t.Errorf("Role = %q, want lowercased admin", users[0].Role)
	}
	if users[1].Username != "" || users[1].Role != "" {
		t.Errorf("optional columns should stay empty: %+v", users[1])
	}
}

func TestParseUsersMissingEmailColumn(t *testing.T) {
	csv := "Full Name\nAlice"

	if _, err := ParseUsers(strings.NewReader(csv), "users.csv"); err == nil {
		t.Fatal("expected error for sheet without an email column")
	}
}

func TestSupportedRosterFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"guests.xlsx", true},
		{"GUESTS.XLSX", true},
		{"guests.csv", true},
		{"guests.xls", false},
		{"guests", false},
	}

	for _, tt := range tests {
		if got := SupportedRosterFile(tt.filename); got != tt.want {
			t.Errorf("SupportedRosterFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestPhotoKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain filename", "jane.png", "jane"},
		{"uppercase", "JANE.PNG", "jane"},
		{"no extension", "jane", "jane"},
		{"nested path", "photos/speakers/jane.jpeg", "jane"},
		{"surrounding spaces", "  jane.jpg ", "jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhotoKey(tt.in); got != tt.want {
				t.Errorf("PhotoKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
