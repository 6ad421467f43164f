//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct {
	sound bool
}

func newPlatformNotifier(sound bool) Notifier {
	return &linuxNotifier{sound: sound}
}

// IsSupported returns true if notify-send is available.
func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

// Send runs notify-send. Whether sound plays is up to the notification
// daemon; we only raise the urgency.
func (n *linuxNotifier) Send(title, body string) error {
	args := []string{"--app-name=calchat"}
	if n.sound {
		args = append(args, "--urgency=normal")
	} else {
		args = append(args, "--urgency=low")
	}
	args = append(args, title, body)

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
