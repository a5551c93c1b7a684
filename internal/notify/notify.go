// Package notify is the local-notification delivery primitive: permission is
// requested once, and Show is fire-and-forget with no delivery receipt.
package notify

import "context"

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifier delivers one-shot notifications. When permission was never
// decided, RequestPermission prompts the user once; while it stays denied or
// undecided, Show is a silent no-op.
type Notifier interface {
	Permission() Permission
	RequestPermission(ctx context.Context) Permission
	Show(ctx context.Context, title, body string)
}
