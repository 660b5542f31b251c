package remote

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPRemote exposes a logged-in FTP session as a RemoteFS.
type FTPRemote struct {
	conn *ftp.ServerConn
}

// DialFTP connects to addr (host:port) and logs in. Connection and login
// failures are fatal to the run; there is no retry.
func DialFTP(ctx context.Context, addr, username, password string, timeout time.Duration) (*FTPRemote, error) {
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	if err := conn.Login(username, password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("logging in to %s: %w", addr, err)
	}
	return &FTPRemote{conn: conn}, nil
}

func (r *FTPRemote) ChangeDirectory(name string) error {
	if name == ".." {
		return r.conn.ChangeDirToParent()
	}
	return r.conn.ChangeDir(name)
}

func (r *FTPRemote) MakeDirectory(name string) error {
	return r.conn.MakeDir(name)
}

func (r *FTPRemote) RemoveFile(name string) error {
	return r.conn.Delete(name)
}

func (r *FTPRemote) RemoveDirectory(name string) error {
	return r.conn.RemoveDir(name)
}

func (r *FTPRemote) PutFile(name string, src io.Reader) error {
	return r.conn.Stor(name, src)
}

// Close ends the session.
func (r *FTPRemote) Close() error {
	return r.conn.Quit()
}
