package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smooks-go/cdrl/modules/trace"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

func TestAppRunFiresTraceVisitorOverInputDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	configPath := writeTempFile(t, dir, "config.cdrl", `<?xml version="1.0"?>
<smooks-resource-list xmlns="https://www.smooks.org/xsd/smooks-2.0.xsd">
	<resource-config selector="order" resource="cdrl.trace.Logger">
	</resource-config>
</smooks-resource-list>
`)
	inputPath := writeTempFile(t, dir, "input.xml", `<root><order id="1">hello</order></root>`)

	cfg, err := NewConfig(Config{ConfigPath: configPath, InputPath: inputPath})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	testApp, logs := SetupAppTest(t, cfg, &trace.Module{})

	// --- Act ---
	if err := testApp.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// --- Assert ---
	out := logs.String()
	if !strings.Contains(out, "trace: before") {
		t.Errorf("expected a Before firing to be logged, got:\n%s", out)
	}
	if !strings.Contains(out, "trace: after") {
		t.Errorf("expected an After firing to be logged, got:\n%s", out)
	}
}

func TestAppRunReturnsErrorForUnknownResource(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	configPath := writeTempFile(t, dir, "config.cdrl", `<?xml version="1.0"?>
<smooks-resource-list xmlns="https://www.smooks.org/xsd/smooks-2.0.xsd">
	<resource-config selector="order" resource="no.such.Visitor">
	</resource-config>
</smooks-resource-list>
`)
	inputPath := writeTempFile(t, dir, "input.xml", `<root/>`)

	cfg, err := NewConfig(Config{ConfigPath: configPath, InputPath: inputPath})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	testApp, _ := SetupAppTest(t, cfg, &trace.Module{})

	// --- Act ---
	err = testApp.Run(context.Background(), cfg)

	// --- Assert ---
	if err == nil {
		t.Fatal("expected Run to fail for an unregistered resource locator")
	}
	if !strings.Contains(err.Error(), "no.such.Visitor") {
		t.Errorf("expected error to name the missing resource, got: %v", err)
	}
}
