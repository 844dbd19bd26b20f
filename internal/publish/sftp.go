// Package publish uploads the generated site to a web host over SFTP.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"careers-engine/internal/logging"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	RemoteDir             string
	KnownHosts            string // known_hosts file used to verify the server key
	InsecureIgnoreHostKey bool
	Timeout               time.Duration
}

type Uploader struct {
	cfg Config
	log *logging.Logger
}

func New(cfg Config, log *logging.Logger) *Uploader {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Uploader{cfg: cfg, log: log.With("component", "publish")}
}

// Upload copies files (paths relative to root, slash separated) under the
// remote directory, creating directories as needed.
func (u *Uploader) Upload(ctx context.Context, root string, files []string) error {
	if u.cfg.Host == "" || u.cfg.User == "" || u.cfg.Password == "" {
		return errors.New("sftp: missing host, user or password")
	}

	hostKey, err := u.hostKeyCallback()
	if err != nil {
		return err
	}

	sshCfg := &ssh.ClientConfig{
		User:            u.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(u.cfg.Password)},
		HostKeyCallback: hostKey,
		Timeout:         u.cfg.Timeout,
	}
	addr := fmt.Sprintf("%s:%d", u.cfg.Host, u.cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("sftp: dial %s: %w", addr, r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer client.Close()

	if err := UploadTree(ctx, client, root, u.cfg.RemoteDir, files); err != nil {
		return err
	}
	u.log.Info("published", "host", u.cfg.Host, "dir", u.cfg.RemoteDir, "files", len(files))
	return nil
}

func (u *Uploader) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if u.cfg.InsecureIgnoreHostKey {
		u.log.Warn("host key verification disabled")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if u.cfg.KnownHosts == "" {
		return nil, errors.New("sftp: known_hosts file not configured")
	}
	cb, err := knownhosts.New(u.cfg.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: known_hosts: %w", err)
	}
	return cb, nil
}

// UploadTree copies files from root to remoteDir over an open client.
func UploadTree(ctx context.Context, client *sftp.Client, root, remoteDir string, files []string) error {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	made := map[string]bool{}
	for _, rel := range sorted {
		if err := ctx.Err(); err != nil {
			return err
		}

		dst := path.Join(remoteDir, filepath.ToSlash(rel))
		if dir := path.Dir(dst); !made[dir] {
			if err := client.MkdirAll(dir); err != nil {
				return fmt.Errorf("sftp: mkdir %s: %w", dir, err)
			}
			made[dir] = true
		}

		if err := uploadFile(client, filepath.Join(root, filepath.FromSlash(rel)), dst); err != nil {
			return err
		}
	}
	return nil
}

func uploadFile(client *sftp.Client, localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create %s: %w", remotePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("sftp: upload %s: %w", remotePath, err)
	}
	return dst.Close()
}
