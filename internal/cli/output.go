package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Action:
		o.printAction(v)
	case []Action:
		o.printActions(v)
	case Session:
		o.printSession(v)
	case []Session:
		o.printSessions(v)
	case CleanResult:
		fmt.Printf("Removed %d session(s)\n", v.Removed)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Aura      int       `json:"aura"`
	CreatedAt time.Time `json:"created_at"`
	Bio       string    `json:"bio,omitempty"`
}

// Action response type
type Action struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Change     int       `json:"change"`
	Timestamp  time.Time `json:"timestamp"`
	Reason     string    `json:"reason,omitempty"`
}

// Session response type
type Session struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Current      bool      `json:"current"`
}

// CleanResult response type
type CleanResult struct {
	Removed int `json:"removed"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Aura: %+d\n", p.Aura)
	if p.Bio != "" {
		fmt.Printf("Bio: %s\n", p.Bio)
	}
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	for i, p := range players {
		fmt.Printf("%2d. %-20s %+d  (%s)\n", i+1, p.Name, p.Aura, p.ID)
	}
}

func (o *Output) printAction(a Action) {
	reason := a.Reason
	if reason == "" {
		reason = "-"
	}
	fmt.Printf("%s  %-20s %+d  %s\n", a.Timestamp.Format(time.RFC3339), a.PlayerName, a.Change, reason)
}

func (o *Output) printActions(actions []Action) {
	if len(actions) == 0 {
		fmt.Println("No actions")
		return
	}
	for _, a := range actions {
		o.printAction(a)
	}
}

func (o *Output) printSession(s Session) {
	currentStr := ""
	if s.Current {
		currentStr = " [current]"
	}
	fmt.Printf("Session: %s (code %s)%s\n", s.Name, s.Code, currentStr)
	fmt.Printf("ID: %s\n", s.ID)
	fmt.Printf("Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Last activity: %s\n", s.LastActivity.Format(time.RFC3339))
}

func (o *Output) printSessions(sessions []Session) {
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	for _, s := range sessions {
		currentStr := ""
		if s.Current {
			currentStr = " [current]"
		}
		fmt.Printf("%s  %-20s (%s)%s\n", s.Code, s.Name, s.ID, currentStr)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Storage: %s\n", h.Storage)
}
