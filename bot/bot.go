// Package bot serves moves over NATS. A request carries a position and an
// optional strategy; the reply carries the chosen move.
package bot

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/domino14/reversi/alphabeta"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/strategy"
)

// Field names used in requests and responses.
const (
	FieldLayout   = "layout"
	FieldToMove   = "to_move"
	FieldTurn     = "turn"
	FieldStrategy = "strategy"
	FieldMove     = "move"
	FieldValue    = "value"
	FieldPlayer   = "player"
	FieldError    = "error"
)

var ErrBotResponse = errors.New("bot returned an error")

type Bot struct {
	config *config.Config
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg}
}

type request struct {
	board    board.Board
	strategy string
}

func errorResponse(message string, err error) *structpb.Struct {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldError: structpb.NewStringValue(msg),
	}}
}

// Deserialize parses a request. The strategy defaults to alphabeta.
func (bot *Bot) Deserialize(data []byte) (*request, error) {
	req := &structpb.Struct{}
	if err := proto.Unmarshal(data, req); err != nil {
		return nil, err
	}
	f := req.GetFields()
	var toMove board.Color
	switch c := f[FieldToMove].GetStringValue(); c {
	case board.Black.String():
		toMove = board.Black
	case board.White.String():
		toMove = board.White
	default:
		return nil, fmt.Errorf("bad %s field %q", FieldToMove, c)
	}
	b, err := board.FromString(f[FieldLayout].GetStringValue(), toMove,
		int(f[FieldTurn].GetNumberValue()))
	if err != nil {
		return nil, err
	}
	name := f[FieldStrategy].GetStringValue()
	if name == "" {
		name = "alphabeta"
	}
	return &request{board: b, strategy: name}, nil
}

func (bot *Bot) handle(data []byte) *structpb.Struct {
	req, err := bot.Deserialize(data)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	s, err := strategy.New(req.strategy, bot.config)
	if err != nil {
		return errorResponse("Could not create AI player", err)
	}
	fields := map[string]*structpb.Value{
		FieldPlayer: structpb.NewStringValue(s.Name()),
	}
	var m *move.Move
	if ab, ok := s.(*strategy.AlphaBetaStrategy); ok {
		var res alphabeta.Result[board.Board]
		m, res, err = ab.Choose(req.board)
		if err != nil {
			return errorResponse("Could not search", err)
		}
		fields[FieldValue] = structpb.NewNumberValue(float64(res.Value))
	} else {
		b := req.board
		if _, err := s.Move(&b); err != nil {
			return errorResponse("Could not move", err)
		}
		m, err = move.Derive(req.board, b)
		if err != nil {
			return errorResponse("Could not move", err)
		}
	}
	log.Info().Str("player", s.Name()).Str("board", req.board.String()).
		Msgf("Generated move: %s", m.ShortDescription())
	fields[FieldMove] = structpb.NewStringValue(m.ShortDescription())
	return &structpb.Struct{Fields: fields}
}

// Main answers requests on subject until the process exits.
func Main(subject string, bot *Bot) error {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	_, err = nc.Subscribe(subject, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(m.Data)
		data, err := proto.Marshal(resp)
		if err != nil {
			m.Respond([]byte(err.Error()))
		} else {
			m.Respond(data)
		}
	})
	if err != nil {
		return err
	}
	nc.Flush()

	if err := nc.LastError(); err != nil {
		return err
	}

	log.Info().Msgf("Listening on [%s]", subject)

	runtime.Goexit()
	return nil
}
