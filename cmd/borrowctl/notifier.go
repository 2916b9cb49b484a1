package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// terminalNotifier 阻塞式提示：Alert 直接打印，Confirm 读一行 y/N
type terminalNotifier struct {
	in  *bufio.Scanner
	out io.Writer
}

func (n *terminalNotifier) Alert(title, message string) {
	fmt.Fprintf(n.out, "\n[%s] %s\n", title, message)
}

func (n *terminalNotifier) Confirm(ctx context.Context, title, message string) bool {
	fmt.Fprintf(n.out, "\n[%s] %s (y/N): ", title, message)
	if ctx.Err() != nil || !n.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(n.in.Text())) {
	case "y", "yes", "c", "co", "có":
		return true
	}
	return false
}

// Ask 读一行输入，EOF 返回 ok=false
func (n *terminalNotifier) Ask(prompt string) (string, bool) {
	fmt.Fprint(n.out, prompt)
	if !n.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(n.in.Text()), true
}
