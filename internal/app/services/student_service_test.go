package services

import (
	"strings"
	"testing"
)

func validStudentRecord() map[string]string {
	return map[string]string{
		"NIS":               "20260001",
		"Nama Lengkap":      "Budi Santoso",
		"Jenis Kelamin":     "L",
		"Tanggal Lahir":     "2013-01-20",
		"Tempat Lahir":      "Jakarta",
		"Alamat":            "Jl. Kenanga 5",
		"Nama Orang Tua":    "Santoso",
		"Telepon Orang Tua": "081298765432",
		"Kelas":             "7A",
	}
}

func TestStudentFromRecord(t *testing.T) {
	student, err := studentFromRecord(validStudentRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.NIS != "20260001" {
		t.Errorf("nis = %q", student.NIS)
	}
	if string(student.Gender) != "MALE" {
		t.Errorf("gender = %q, want MALE", student.Gender)
	}
	if student.ClassName == nil || *student.ClassName != "7A" {
		t.Errorf("class name = %v, want 7A", student.ClassName)
	}
	if got := student.DateOfBirth.Format("2006-01-02"); got != "2013-01-20" {
		t.Errorf("date of birth = %q", got)
	}
}

func TestStudentFromRecordRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantMsg string
	}{
		{
			name:    "missing nis",
			mutate:  func(r map[string]string) { r["NIS"] = "" },
			wantMsg: "NIS",
		},
		{
			name:    "whitespace-only name",
			mutate:  func(r map[string]string) { r["Nama Lengkap"] = "   " },
			wantMsg: "Nama Lengkap",
		},
		{
			name:    "unknown gender",
			mutate:  func(r map[string]string) { r["Jenis Kelamin"] = "X" },
			wantMsg: "Jenis Kelamin",
		},
		{
			name:    "bad date",
			mutate:  func(r map[string]string) { r["Tanggal Lahir"] = "20/01/2013" },
			wantMsg: "Tanggal Lahir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validStudentRecord()
			tt.mutate(record)
			_, err := studentFromRecord(record)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestStudentFromRecordOptionalClass(t *testing.T) {
	record := validStudentRecord()
	delete(record, "Kelas")

	student, err := studentFromRecord(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.ClassName != nil {
		t.Errorf("class name should stay nil, got %q", *student.ClassName)
	}
}

func TestParseGenderAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"L", "MALE"},
		{"laki-laki", "MALE"},
		{"MALE", "MALE"},
		{"p", "FEMALE"},
		{"Perempuan", "FEMALE"},
		{"female", "FEMALE"},
	}
	for _, tt := range tests {
		got, err := parseGender(tt.in)
		if err != nil {
			t.Errorf("parseGender(%q) returned error: %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("parseGender(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
