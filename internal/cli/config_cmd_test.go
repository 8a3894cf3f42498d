package cli

import (
	"strings"
	"testing"
)

func resetConfigScopeFlags(t *testing.T) {
	t.Helper()
	prevScope, prevOnly, prevName, prevUUID := configScopeFlag, configPluginOnlyFlag, configByNameFlag, configByUUIDFlag
	t.Cleanup(func() {
		configScopeFlag, configPluginOnlyFlag, configByNameFlag, configByUUIDFlag = prevScope, prevOnly, prevName, prevUUID
	})
}

func TestConfigSetGetRemoveRoundTrip(t *testing.T) {
	resetGlobalCLIState(t)
	resetConfigScopeFlags(t)
	t.Setenv("HOME", t.TempDir())
	jsonOutput = false
	configScopeFlag = "global"

	if err := configSetCmd.RunE(configSetCmd, []string{"greeting", `"hello"`}); err != nil {
		t.Fatalf("set: %v", err)
	}

	out := captureStdout(t, func() {
		if err := configGetCmd.RunE(configGetCmd, []string{"greeting"}); err != nil {
			t.Fatalf("get: %v", err)
		}
	})
	if strings.TrimSpace(out) != `"hello"` {
		t.Fatalf("expected quoted hello, got %q", out)
	}

	existed, err := captureConfigRemove(t, "greeting")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(existed, "existed=true") {
		t.Fatalf("expected existed=true, got %q", existed)
	}

	if err := configGetCmd.RunE(configGetCmd, []string{"greeting"}); err == nil {
		t.Fatal("expected not_found error after removal")
	}
}

func captureConfigRemove(t *testing.T, key string) (string, error) {
	t.Helper()
	var runErr error
	out := captureStdout(t, func() {
		runErr = configRemoveCmd.RunE(configRemoveCmd, []string{key})
	})
	return out, runErr
}

func TestConfigUnknownScopeRejected(t *testing.T) {
	resetGlobalCLIState(t)
	resetConfigScopeFlags(t)
	configScopeFlag = "bogus"
	jsonOutput = false

	if err := configGetCmd.RunE(configGetCmd, []string{"anything"}); err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestConfigLibraryScopeRequiresLibrary(t *testing.T) {
	resetGlobalCLIState(t)
	resetConfigScopeFlags(t)
	resolvedLibraryPath = ""
	configScopeFlag = "library"
	jsonOutput = false

	if err := configGetCmd.RunE(configGetCmd, []string{"anything"}); err == nil {
		t.Fatal("expected error when library scope has no configured library")
	}
}
