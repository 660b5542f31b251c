package engine

import (
	"context"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tkoeppen/ftpsync/internal/config"
	"github.com/tkoeppen/ftpsync/internal/remote"
)

const dialTimeout = 30 * time.Second

// New builds an Engine for basePath wired to the store the credentials
// describe.
func New(basePath string, creds *config.Creds) *Engine {
	if creds.Protocol == config.ProtocolLocal {
		return &Engine{
			BasePath:   basePath,
			RemoteBase: "/",
			Connect: func(ctx context.Context) (remote.RemoteFS, error) {
				return remote.NewBillyRemote(osfs.New(creds.BasePath)), nil
			},
		}
	}

	return &Engine{
		BasePath:   basePath,
		RemoteBase: creds.BasePath,
		Connect: func(ctx context.Context) (remote.RemoteFS, error) {
			return remote.DialFTP(ctx, creds.Server, creds.Username, creds.Password, dialTimeout)
		},
	}
}
