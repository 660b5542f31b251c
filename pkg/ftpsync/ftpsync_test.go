package ftpsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func setupProject(t *testing.T) (base, target string) {
	t.Helper()
	base = t.TempDir()
	target = t.TempDir()

	configYAML := "version: 1\n"
	credsYAML := "protocol: local\nbase_path: " + target + "\n"
	ignore := ".ftpsync/\nftpsync.yaml\nftpsync.creds.yaml\n.ftpsyncignore\n"

	for name, content := range map[string]string{
		"ftpsync.yaml":       configYAML,
		"ftpsync.creds.yaml": credsYAML,
		".ftpsyncignore":     ignore,
	} {
		if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return base, target
}

func TestClientDeployToLocalTarget(t *testing.T) {
	base, target := setupProject(t)
	if err := os.WriteFile(filepath.Join(base, "index.html"), []byte("<html/>"), 0644); err != nil {
		t.Fatal(err)
	}

	client, err := New(Options{BasePath: base})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := client.Deploy(context.Background(), DeployOptions{})
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if len(res.Actions) != 1 || res.Actions[0].Path != "index.html" || res.Actions[0].Delete {
		t.Errorf("actions = %+v", res.Actions)
	}
	if len(res.Failures) != 0 {
		t.Errorf("failures = %+v", res.Failures)
	}

	data, err := os.ReadFile(filepath.Join(target, "index.html"))
	if err != nil {
		t.Fatalf("target file missing: %v", err)
	}
	if string(data) != "<html/>" {
		t.Errorf("target content = %q", data)
	}

	// A second run has nothing to do.
	res, err = client.Deploy(context.Background(), DeployOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Actions) != 0 {
		t.Errorf("second run planned %+v", res.Actions)
	}
}

func TestClientDeployRemovesVanishedFiles(t *testing.T) {
	base, target := setupProject(t)
	path := filepath.Join(base, "old.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	client, err := New(Options{BasePath: base})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Deploy(context.Background(), DeployOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	res, err := client.Deploy(context.Background(), DeployOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Actions) != 1 || !res.Actions[0].Delete {
		t.Errorf("actions = %+v", res.Actions)
	}
	if _, err := os.Stat(filepath.Join(target, "old.txt")); err == nil {
		t.Error("deleted file still present in target")
	}
}

func TestClientFilesHonorsIgnoreFile(t *testing.T) {
	base, _ := setupProject(t)
	if err := os.WriteFile(filepath.Join(base, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	client, err := New(Options{BasePath: base})
	if err != nil {
		t.Fatal(err)
	}

	paths, err := client.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(paths) != 1 || paths[0] != "a.txt" {
		t.Errorf("Files = %v, want [a.txt]", paths)
	}
}

func TestNewRejectsMissingBasePath(t *testing.T) {
	if _, err := New(Options{BasePath: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Error("expected error for missing base directory")
	}
}
