package adapter

import "testing"

func TestRowTextBuildsSyntheticBlobWithSeparator(t *testing.T) {
	order := []string{"id", "email", "note"}
	values := map[string]string{
		"id":    "42",
		"email": "a@b.com",
		"note":  "hello",
	}

	text, columnAt := rowText(order, values)

	want := "42" + RecordSeparator + "a@b.com" + RecordSeparator + "hello" + RecordSeparator
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}

	if col := columnAt(0); col != "id" {
		t.Errorf("columnAt(0) = %q, want id", col)
	}
	if col := columnAt(len("42" + RecordSeparator)); col != "email" {
		t.Errorf("columnAt(after id) = %q, want email", col)
	}
}

func TestWantColumnRespectsIncludeAndExclude(t *testing.T) {
	cfg := DBConfig{Columns: []string{"email", "ssn"}, ExcludeColumns: []string{"ssn"}}
	if !wantColumn(cfg, "email") {
		t.Error("email should be wanted")
	}
	if wantColumn(cfg, "ssn") {
		t.Error("ssn is excluded and should not be wanted")
	}
	if wantColumn(cfg, "other") {
		t.Error("other is not in the include list and should not be wanted")
	}
}

func TestWantTableDefaultsToEveryTable(t *testing.T) {
	cfg := DBConfig{ExcludeTables: []string{"audit_log"}}
	if !wantTable(cfg, "users") {
		t.Error("users should be wanted by default")
	}
	if wantTable(cfg, "audit_log") {
		t.Error("audit_log is excluded and should not be wanted")
	}
}
