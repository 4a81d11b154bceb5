package capnslog

import (
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// JournaldFormatter sends log entries to the systemd journal instead of an
// io.Writer, for processes run as systemd units where it picks up the
// unit's own cursor and metadata rather than interleaving with stdout.
type JournaldFormatter struct{}

// NewJournaldFormatter returns a JournaldFormatter, or nil and an error if
// this process cannot reach a running journald.
func NewJournaldFormatter() (*JournaldFormatter, error) {
	if !journal.Enabled() {
		return nil, errJournalUnavailable
	}
	return &JournaldFormatter{}, nil
}

func (j *JournaldFormatter) Format(pkg string, level LogLevel, _ int, entries ...LogEntry) {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.LogString())
	}
	vars := map[string]string{"SYSLOG_IDENTIFIER": pkg}
	journal.Send(b.String(), journalPriority(level), vars)
}

func journalPriority(l LogLevel) journal.Priority {
	switch l {
	case CRITICAL:
		return journal.PriCrit
	case ERROR:
		return journal.PriErr
	case WARNING:
		return journal.PriWarning
	case NOTICE:
		return journal.PriNotice
	case INFO:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

type journalUnavailableError string

func (e journalUnavailableError) Error() string { return string(e) }

const errJournalUnavailable = journalUnavailableError("journald is not reachable from this process")
