// Package fake provides an in-process Minecraft status server for development and tests.
package fake

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync"

	mcnet "github.com/Tnze/go-mc/net"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Packet identifiers of the status state.
const (
	packetStatus = 0x00
	packetPing   = 0x01

	intentStatus = 1
)

// Status is the document the fake server reports.
// A nil Players slice omits the sample from the response.
type Status struct {
	Description string
	Version     string
	Players     []string
	Protocol    int
	Online      int
	Max         int
}

// Server answers status and ping requests with a fixed Status.
type Server struct {
	listener *mcnet.Listener
	status   []byte
	wg       sync.WaitGroup
}

// Listen starts listening on addr (e.g. "127.0.0.1:0").
// Call Serve to accept connections.
func Listen(addr string, status Status) (*Server, error) {
	doc, err := encodeStatus(status)
	if err != nil {
		return nil, err
	}

	l, err := mcnet.ListenMC(addr)
	if err != nil {
		return nil, err
	}

	return &Server{listener: l, status: doc}, nil
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts connections until Close is called.
func (s *Server) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Debug().Err(err).Msg("Fake server accept failed")
			}
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { _ = conn.Close() }()

			if err := s.handle(&conn); err != nil {
				log.Debug().Err(err).Msg("Fake server connection closed")
			}
		}()
	}
}

// Close stops the listener and waits for open connections.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) handle(conn *mcnet.Conn) error {
	var p pk.Packet

	// handshake
	if err := conn.ReadPacket(&p); err != nil {
		return err
	}
	var (
		protocol, intent pk.VarInt
		host             pk.String
		port             pk.UnsignedShort
	)
	if err := p.Scan(&protocol, &host, &port, &intent); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if intent != intentStatus {
		return fmt.Errorf("unsupported intent %d", intent)
	}

	// status request
	if err := conn.ReadPacket(&p); err != nil {
		return err
	}
	if p.ID != packetStatus {
		return fmt.Errorf("unexpected packet 0x%02x", p.ID)
	}
	if err := conn.WritePacket(pk.Marshal(packetStatus, pk.String(s.status))); err != nil {
		return err
	}

	// ping
	if err := conn.ReadPacket(&p); err != nil {
		return err
	}
	var payload pk.Long
	if err := p.Scan(&payload); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return conn.WritePacket(pk.Marshal(packetPing, payload))
}

func encodeStatus(st Status) ([]byte, error) {
	type player struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}

	var doc struct {
		Description struct {
			Text string `json:"text"`
		} `json:"description"`
		Version struct {
			Name     string `json:"name"`
			Protocol int    `json:"protocol"`
		} `json:"version"`
		Players struct {
			Sample *[]player `json:"sample,omitempty"`
			Max    int       `json:"max"`
			Online int       `json:"online"`
		} `json:"players"`
	}

	doc.Description.Text = st.Description
	doc.Version.Name = st.Version
	doc.Version.Protocol = st.Protocol
	doc.Players.Max = st.Max
	doc.Players.Online = st.Online

	if st.Players != nil {
		sample := make([]player, 0, len(st.Players))
		for _, name := range st.Players {
			sample = append(sample, player{
				Name: name,
				ID:   uuid.NewMD5(uuid.NameSpaceOID, []byte(name)).String(),
			})
		}
		doc.Players.Sample = &sample
	}

	return json.Marshal(doc)
}

// RandomStatus generates a plausible status with up to maxPlayers online.
func RandomStatus(maxPlayers int) Status {
	names := []string{
		"Notch", "jeb_", "Dinnerbone", "Grumm", "Alex", "Steve", "Herobrine",
		"Technoblade", "Dream", "Xisuma", "Mumbo", "Grian", "Iskall85", "Etho",
	}
	versions := []string{"Paper 1.21.4", "Purpur 1.21.1", "Fabric 1.20.6", "1.21.4"}
	motds := []string{"A Minecraft Server", "Survival SMP", "Creative build world"}

	online := 0
	if maxPlayers > 0 {
		online = rand.Intn(min(maxPlayers, len(names)) + 1)
	}

	players := make([]string, 0, online)
	for _, i := range rand.Perm(len(names))[:online] {
		players = append(players, names[i])
	}

	return Status{
		Description: motds[rand.Intn(len(motds))],
		Version:     versions[rand.Intn(len(versions))],
		Protocol:    769,
		Players:     players,
		Online:      online,
		Max:         maxPlayers,
	}
}
