package dnf

import (
	"sort"
	"strings"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// queryFormat is the tab-separated repoquery output consumed by
// parseQueryLines.
const queryFormat = "%{name}\t%{epoch}\t%{version}\t%{release}\t%{arch}\t%{reponame}\n"

// parseQueryLines parses repoquery output in queryFormat into records.
// Malformed lines are skipped.
func parseQueryLines(out string) []engine.PackageRecord {
	var recs []engine.PackageRecord
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) != 6 {
			continue
		}
		epoch := fields[1]
		if epoch == "" || epoch == "(none)" {
			epoch = "0"
		}
		recs = append(recs, engine.PackageRecord{
			Name:    fields[0],
			Epoch:   epoch,
			Version: fields[2],
			Release: fields[3],
			Arch:    fields[4],
			Repo:    fields[5],
		})
	}
	return recs
}

// transaction table section headers and the outcome set they feed.
var txSections = map[string]int{
	"Installing:":                   sectionInstall,
	"Installing dependencies:":      sectionInstall,
	"Installing weak dependencies:": sectionInstall,
	"Reinstalling:":                 sectionInstall,
	"Upgrading:":                    sectionUpgrade,
	"Downgrading:":                  sectionUpgrade,
	"Removing:":                     sectionRemove,
	"Removing dependent packages:":  sectionRemove,
	"Removing unused dependencies:": sectionRemove,
}

const (
	sectionNone = iota
	sectionInstall
	sectionUpgrade
	sectionRemove
)

// parseTransactionTable extracts the resolved package sets from the
// transaction summary dnf prints before asking for confirmation. Table
// rows are indented; any unindented line ends the current section.
func parseTransactionTable(out string) *engine.Transaction {
	tx := &engine.Transaction{}
	section := sectionNone
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			section = txSections[trimmed]
			continue
		}
		if section == sectionNone {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 4 {
			continue
		}
		epoch, version, release := parseEVR(fields[2])
		rec := engine.PackageRecord{
			Name:    fields[0],
			Epoch:   epoch,
			Version: version,
			Release: release,
			Arch:    fields[1],
			Repo:    fields[3],
		}
		switch section {
		case sectionInstall:
			tx.Install = append(tx.Install, rec)
		case sectionUpgrade:
			tx.Upgrade = append(tx.Upgrade, rec)
		case sectionRemove:
			tx.Remove = append(tx.Remove, rec)
		}
	}
	return tx
}

// parseEVR splits an [epoch:]version-release string.
func parseEVR(evr string) (epoch, version, release string) {
	epoch = "0"
	if i := strings.Index(evr, ":"); i >= 0 {
		epoch = evr[:i]
		evr = evr[i+1:]
	}
	if j := strings.LastIndex(evr, "-"); j >= 0 {
		return epoch, evr[:j], evr[j+1:]
	}
	return epoch, evr, ""
}

// parseRepoIDs extracts repository identifiers from repolist output,
// skipping the header row and metadata chatter.
func parseRepoIDs(out string) []string {
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		id := fields[0]
		if id == "repo" || strings.HasPrefix(line, "Last metadata") {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// findErrorLine returns the first "Error:" line emitted by the engine.
func findErrorLine(stderr string) (string, bool) {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if msg, ok := strings.CutPrefix(line, "Error:"); ok {
			return strings.TrimSpace(msg), true
		}
	}
	return "", false
}

// classifyErrorLine maps a dnf error line onto the convergence error
// taxonomy: missing units and groups become not-found errors, everything
// else stays an opaque engine error.
func classifyErrorLine(line string) *engine.Error {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "no match for argument"),
		strings.Contains(lower, "no group"),
		strings.Contains(lower, "unable to find"),
		strings.Contains(lower, "not found"):
		return engine.NewNotFoundError("", line)
	}
	return engine.NewEngineError(line, nil)
}
