// Command roomcli is a terminal chat client for a devroom server.
//
// It logs in over the REST API, lists the caller's projects, then opens the
// websocket for the chosen project and relays stdin lines into the room.
// Mention the assistant with @ai to get a reply.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"devroom/domain"
	"devroom/gateway"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/olekukonko/tablewriter"
)

func main() {
	addr := flag.String("addr", "localhost:3000", "Server host:port")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	projectID := flag.String("project", "", "Project id to join (omit to list projects)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	token, err := login(*addr, *email, *password)
	if err != nil {
		log.Fatal("Login failed: ", err)
	}
	color.Green.Println("✔ Logged in as", *email)

	if *projectID == "" {
		if err := listProjects(*addr, token); err != nil {
			log.Fatal("Listing projects failed: ", err)
		}
		fmt.Println("\nRe-run with -project <id> to join a room")
		return
	}

	if err := joinRoom(*addr, token, *projectID, *email); err != nil {
		log.Fatal(err)
	}
}

func login(addr, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(fmt.Sprintf("http://%s/users/login", addr), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func listProjects(addr, token string) error {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/projects/all", addr), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	var out struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Members", "Created"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, p := range out.Projects {
		table.Append([]string{
			p.ID,
			p.Name,
			fmt.Sprintf("%d", len(p.MemberIDs)),
			p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

func joinRoom(addr, token, projectID, email string) error {
	wsURL := url.URL{
		Scheme:   "ws",
		Host:     addr,
		Path:     "/ws",
		RawQuery: url.Values{"projectId": {projectID}, "token": {token}}.Encode(),
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		if resp != nil {
			payload, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("handshake rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		}
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	color.Cyan.Println("Joined room", projectID, "(type a message, Ctrl+C to leave)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var env gateway.Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			if env.Event != gateway.EventProjectMessage {
				continue
			}
			printMessage(env.Data)
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-done:
			return fmt.Errorf("connection closed by server")
		case line, ok := <-lines:
			if !ok {
				return closeGracefully(conn, done)
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			env := gateway.Envelope{
				Event: gateway.EventProjectMessage,
				Data:  domain.ChatMessage{Text: line, Sender: email, ProjectID: projectID},
			}
			if err := conn.WriteJSON(env); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
		case <-interrupt:
			return closeGracefully(conn, done)
		}
	}
}

func closeGracefully(conn *websocket.Conn, done chan struct{}) error {
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return nil
}

func printMessage(msg domain.ChatMessage) {
	label := color.New(color.FgYellow)
	if msg.Sender == domain.DefaultBotLabel {
		label = color.New(color.FgMagenta, color.Bold)
	}
	fmt.Printf("%s %s\n", label.Render("["+msg.Sender+"]"), msg.Text)
}
