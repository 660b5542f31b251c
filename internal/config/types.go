// Package config loads the ftpsync.yaml project configuration and the
// ftpsync.creds.yaml connection credentials. Both live in the base
// directory; credentials are split out so they can stay out of version
// control.
package config

// ConfigFileName is the project configuration file, relative to the base
// directory.
const ConfigFileName = "ftpsync.yaml"

// CredsFileName is the connection credentials file, relative to the base
// directory.
const CredsFileName = "ftpsync.creds.yaml"

// Protocols accepted in the credentials file.
const (
	ProtocolFTP   = "ftp"
	ProtocolLocal = "local"
)

// Config is the ftpsync.yaml project configuration.
type Config struct {
	Version int `yaml:"version"`

	// Hooks are shell commands run before every deploy, in order.
	Hooks []string `yaml:"hooks,omitempty"`

	// Jobs is the default scan parallelism. 0 means host parallelism.
	Jobs int `yaml:"jobs,omitempty"`
}

// Creds describes how to reach the remote store.
type Creds struct {
	// Protocol selects the transport: "ftp" or "local".
	Protocol string `yaml:"protocol"`

	// Server is the host:port of the FTP server. FTP only.
	Server string `yaml:"server,omitempty"`

	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// BasePath is the remote directory deploys root at. For the local
	// protocol it is the target directory itself.
	BasePath string `yaml:"base_path"`
}
