package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// Requester is satisfied by *nats.Conn.
type Requester interface {
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

// Client asks a remote bot for moves. It can stand in as a game.Player.
type Client struct {
	nc       Requester
	subject  string
	strategy string
	gen      *movegen.Generator

	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

func NewClient(nc Requester, subject, strategyName string) *Client {
	return &Client{
		nc:       nc,
		subject:  subject,
		strategy: strategyName,
		gen:      movegen.NewGenerator(),
		timeout:  10 * time.Second,
		attempts: 3,
		delay:    100 * time.Millisecond,
	}
}

func MakeRequest(b board.Board, strategyName string) ([]byte, error) {
	req, err := structpb.NewStruct(map[string]any{
		FieldLayout:   b.Layout(),
		FieldToMove:   b.ToMove().String(),
		FieldTurn:     b.Turn(),
		FieldStrategy: strategyName,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(req)
}

// ParseResponse reads a bot reply into a move for color c.
func ParseResponse(data []byte, c board.Color) (*move.Move, error) {
	resp := &structpb.Struct{}
	if err := proto.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	f := resp.GetFields()
	if e, ok := f[FieldError]; ok {
		return nil, fmt.Errorf("%w: %s", ErrBotResponse, e.GetStringValue())
	}
	mv, ok := f[FieldMove]
	if !ok {
		return nil, errors.New("response has no move")
	}
	return move.FromString(mv.GetStringValue(), c)
}

func (c *Client) Name() string {
	return "bot:" + c.subject
}

// RequestMove sends b to the bot and gets a move back. Failed requests are
// retried with exponential backoff.
func (c *Client) RequestMove(b board.Board) (*move.Move, error) {
	data, err := MakeRequest(b, c.strategy)
	if err != nil {
		return nil, err
	}
	var res *nats.Msg
	err = retry.Do(
		func() error {
			res, err = c.nc.Request(c.subject, data, c.timeout)
			return err
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("bot-request-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		log.Error().Msgf("%v for request", err)
		return nil, err
	}
	log.Debug().Int("bytes", len(res.Data)).Msg("bot-response")
	return ParseResponse(res.Data, b.ToMove())
}

// Move asks the bot for a move and plays it on b.
func (c *Client) Move(b *board.Board) (*board.Board, error) {
	m, err := c.RequestMove(*b)
	if err != nil {
		return b, err
	}
	return b, c.gen.Play(b, m)
}
