package dnf

import (
	"testing"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

func TestParseQueryLines(t *testing.T) {
	out := "httpd\t0\t2.4.6\t45.el7\tx86_64\tbase\n" +
		"kernel\t(none)\t5.14.0\t362.el9\tx86_64\tbaseos\n" +
		"openssl\t1\t3.0.7\t25.el9\tx86_64\tbaseos\n" +
		"garbage line without tabs\n" +
		"\n"

	recs := parseQueryLines(out)
	if len(recs) != 3 {
		t.Fatalf("parsed %d records, want 3", len(recs))
	}
	if recs[0].Name != "httpd" || recs[0].Version != "2.4.6" || recs[0].Repo != "base" {
		t.Errorf("record[0] = %+v", recs[0])
	}
	if recs[1].Epoch != "0" {
		t.Errorf("(none) epoch parsed as %q, want 0", recs[1].Epoch)
	}
	if recs[2].Epoch != "1" {
		t.Errorf("explicit epoch parsed as %q, want 1", recs[2].Epoch)
	}
}

func TestParseTransactionTable(t *testing.T) {
	out := `Dependencies resolved.
================================================================================
 Package          Arch      Version             Repository               Size
================================================================================
Installing:
 httpd            x86_64    2.4.6-45.el7        base                    2.7 M
Installing dependencies:
 apr              x86_64    1.4.8-3.el7         base                    103 k
Upgrading:
 openssl          x86_64    1:3.0.7-25.el9      baseos                  1.1 M
Removing:
 telnet           x86_64    0.17-85.el9         @System                  48 k

Transaction Summary
================================================================================
Install  2 Packages
Upgrade  1 Package
Remove   1 Package

Operation aborted.
`
	tx := parseTransactionTable(out)
	if len(tx.Install) != 2 {
		t.Fatalf("Install = %v, want 2 records", tx.Install)
	}
	if tx.Install[0].Name != "httpd" || tx.Install[0].Version != "2.4.6" || tx.Install[0].Release != "45.el7" {
		t.Errorf("Install[0] = %+v", tx.Install[0])
	}
	if tx.Install[1].Name != "apr" {
		t.Errorf("Install[1] = %+v, want the dependency row", tx.Install[1])
	}
	if len(tx.Upgrade) != 1 || tx.Upgrade[0].Epoch != "1" || tx.Upgrade[0].Version != "3.0.7" {
		t.Errorf("Upgrade = %+v", tx.Upgrade)
	}
	if len(tx.Remove) != 1 || tx.Remove[0].Name != "telnet" {
		t.Errorf("Remove = %+v", tx.Remove)
	}
}

func TestParseTransactionTableNothingToDo(t *testing.T) {
	tx := parseTransactionTable("Dependencies resolved.\nNothing to do.\nComplete!\n")
	if !tx.Empty() {
		t.Errorf("transaction = %+v, want empty", tx)
	}
}

func TestParseEVR(t *testing.T) {
	tests := []struct {
		evr     string
		epoch   string
		version string
		release string
	}{
		{"2.4.6-45.el7", "0", "2.4.6", "45.el7"},
		{"1:3.0.7-25.el9", "1", "3.0.7", "25.el9"},
		{"5.9", "0", "5.9", ""},
	}
	for _, tt := range tests {
		epoch, version, release := parseEVR(tt.evr)
		if epoch != tt.epoch || version != tt.version || release != tt.release {
			t.Errorf("parseEVR(%q) = %q,%q,%q want %q,%q,%q",
				tt.evr, epoch, version, release, tt.epoch, tt.version, tt.release)
		}
	}
}

func TestParseRepoIDs(t *testing.T) {
	out := `Last metadata expiration check: 0:20:15 ago.
repo id                      repo name
appstream                    CentOS Stream 9 - AppStream
baseos                       CentOS Stream 9 - BaseOS
extras-common                CentOS Stream 9 - Extras packages
`
	ids := parseRepoIDs(out)
	want := []string{"appstream", "baseos", "extras-common"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFindErrorLine(t *testing.T) {
	stderr := "some noise\nError: Unable to find a match: nosuchpkg\n"
	line, ok := findErrorLine(stderr)
	if !ok || line != "Unable to find a match: nosuchpkg" {
		t.Errorf("findErrorLine = %q, %v", line, ok)
	}
	if _, ok := findErrorLine("all quiet\n"); ok {
		t.Error("found an error line in clean output")
	}
}

func TestClassifyErrorLine(t *testing.T) {
	tests := []struct {
		line     string
		notFound bool
	}{
		{"No match for argument: nosuchpkg", true},
		{"Unable to find a match: nosuchpkg", true},
		{"No group named Development tools", true},
		{"Transaction test error: file conflicts", false},
		{"Failed to download metadata for repo 'testing'", false},
	}
	for _, tt := range tests {
		err := classifyErrorLine(tt.line)
		if got := engine.IsNotFound(err); got != tt.notFound {
			t.Errorf("classifyErrorLine(%q) not-found = %v, want %v", tt.line, got, tt.notFound)
		}
	}
}
