package hooks

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const sampleStack = `goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:24 +0x65
github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/log/hooks.contextHook.Fire()
	/src/IIT-G2046-T1-job-scheduler/common/log/hooks/context_hook.go:27 +0x25
github.com/sirupsen/logrus.LevelHooks.Fire()
	/go/pkg/mod/github.com/sirupsen/logrus@v1.4.2/hooks.go:28 +0x8e
github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine.(*Engine).Run()
	/src/IIT-G2046-T1-job-scheduler/simulator/engine/engine.go:120 +0x3a1
main.main()
	/src/IIT-G2046-T1-job-scheduler/binaries/jobsim/main.go:20 +0x1b
`

func TestCallerLocation(t *testing.T) {
	assert.Equal(t, "simulator/engine/engine.go:120", callerLocation(sampleStack))
}

func TestCallerLocationWithoutHookFrame(t *testing.T) {
	assert.Equal(t, "", callerLocation("goroutine 1 [running]:\nmain.main()\n"))
}

func TestHookCoversAllLevels(t *testing.T) {
	assert.Equal(t, log.AllLevels, NewContextHook().Levels())
}
