package capnslog

import (
	"fmt"
	"log"
	"os"
	"testing"
)

func TestFmt(t *testing.T) {
	fmt.Println("foo")
}

func TestLog(t *testing.T) {
	SetFormatter(NewStringFormatter(os.Stdout))
	log.Println("foo")
}

func TestCapnslogCaptureAtInfo(t *testing.T) {
	MustRepoLogger("log").SetGlobalLogLevel(ERROR)
	SetFormatter(NewStringFormatter(os.Stdout))
	log.Println("at error")
	MustRepoLogger("log").SetGlobalLogLevel(INFO)
	log.Println("at info")
}

func TestCapnslogStraight(t *testing.T) {
	plog := NewPackageLogger("github.com/coreos/pkg/capnslog", "main")
	SetFormatter(NewStringFormatter(os.Stdout))
	plog.Error(BaseLogEntry("error"))
	plog.Print("print")
	plog.Info(BaseLogEntry("info"))
	plog.Debug(BaseLogEntry("debug"))
}
