package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted:
		return PermissionGranted
	case PermissionDenied:
		return PermissionDenied
	default:
		return PermissionDefault
	}
}

// Terminal raises notifications as a bell plus one line on w.
// Permission starts at default and is settled by the first RequestPermission
// according to policy; later requests do not change it.
type Terminal struct {
	w      io.Writer
	policy Permission

	mu   sync.Mutex
	perm Permission
}

func NewTerminal(w io.Writer, policy Permission) *Terminal {
	return &Terminal{w: w, policy: policy, perm: PermissionDefault}
}

func (t *Terminal) RequestPermission(ctx context.Context) Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.perm != PermissionDefault {
		return t.perm
	}
	if ctx.Err() != nil {
		return t.perm
	}
	if t.policy == PermissionGranted {
		t.perm = PermissionGranted
	} else {
		t.perm = PermissionDenied
	}
	return t.perm
}

func (t *Terminal) Permission() Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.perm
}

// Notify is best-effort: write errors are swallowed.
func (t *Terminal) Notify(title, body string) {
	if t.Permission() != PermissionGranted {
		return
	}
	_, _ = fmt.Fprintf(t.w, "\a[%s] %s\n", title, body)
}
