package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	saramaMocks "github.com/IBM/sarama/mocks"
	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/notifier/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotifierTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	ctx      context.Context
	events   []*models.Event
}

func (s *NotifierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	now := time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.events = []*models.Event{
		{
			Type:      models.EventTypeMilestoneReached,
			GameID:    "game-1",
			ChannelID: "C1",
			UserID:    "U1",
			Bucket:    1000,
			Guess:     &models.Guess{Word: "vehicle", Rank: 3, Sequence: 2},
			Message:   "closer",
			Timestamp: now,
		},
		{
			Type:      models.EventTypeMilestoneReached,
			GameID:    "game-1",
			ChannelID: "C1",
			UserID:    "U1",
			Bucket:    100,
			Timestamp: now,
		},
	}
}

func (s *NotifierTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *NotifierTestSuite) newProducer() *saramaMocks.SyncProducer {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	return saramaMocks.NewSyncProducer(s.T(), config)
}

func (s *NotifierTestSuite) TestNewKafkaValidatesConfig() {
	_, err := NewKafka(nil)
	s.ErrorIs(err, ErrNilProducer)

	producer := s.newProducer()
	defer producer.Close()

	_, err = NewKafka(&KafkaConfig{Producer: producer})
	s.ErrorIs(err, ErrEmptyTopic)
}

func (s *NotifierTestSuite) TestKafkaPublishesEventsInOrder() {
	producer := s.newProducer()

	var buckets []int
	checker := func(val []byte) error {
		var event models.Event
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.GameID != "game-1" {
			return errors.New("unexpected game id " + event.GameID)
		}
		buckets = append(buckets, event.Bucket)
		return nil
	}
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(checker)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(checker)

	sink, err := NewKafka(&KafkaConfig{
		Producer: producer,
		Topic:    "similarium-events",
		Logger:   zerolog.Nop(),
	})
	s.Require().NoError(err)

	s.Require().NoError(sink.Publish(s.ctx, s.events))
	s.Equal([]int{1000, 100}, buckets)
	s.Require().NoError(sink.Close())
}

func (s *NotifierTestSuite) TestKafkaPublishFailure() {
	producer := s.newProducer()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink, err := NewKafka(&KafkaConfig{
		Producer: producer,
		Topic:    "similarium-events",
		Logger:   zerolog.Nop(),
	})
	s.Require().NoError(err)

	err = sink.Publish(s.ctx, s.events[:1])
	s.Error(err)
	s.Require().NoError(sink.Close())
}

func (s *NotifierTestSuite) TestKafkaSkipsEmptyBatch() {
	producer := s.newProducer()

	sink, err := NewKafka(&KafkaConfig{
		Producer: producer,
		Topic:    "similarium-events",
		Logger:   zerolog.Nop(),
	})
	s.Require().NoError(err)

	s.NoError(sink.Publish(s.ctx, nil))
	s.Require().NoError(sink.Close())
}

func (s *NotifierTestSuite) TestLogSinkWritesOneLinePerEvent() {
	var buf bytes.Buffer
	sink := NewLog(zerolog.New(&buf))

	s.Require().NoError(sink.Publish(s.ctx, s.events))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	s.Require().Len(lines, 2)

	var first map[string]any
	s.Require().NoError(json.Unmarshal(lines[0], &first))
	s.Equal("milestone_reached", first["event"])
	s.Equal("game-1", first["game_id"])
	s.Equal(float64(1000), first["bucket"])
	s.Equal(float64(3), first["rank"])
	s.Equal("closer", first["message"])
}

func (s *NotifierTestSuite) TestMultiTriesEverySink() {
	failing := mocks.NewMockSink(s.mockCtrl)
	working := mocks.NewMockSink(s.mockCtrl)

	boom := errors.New("boom")
	failing.EXPECT().Publish(gomock.Any(), s.events).Return(boom)
	working.EXPECT().Publish(gomock.Any(), s.events).Return(nil)

	err := Multi(failing, nil, working).Publish(s.ctx, s.events)
	s.ErrorIs(err, boom)
}

func (s *NotifierTestSuite) TestMultiSkipsEmptyBatch() {
	sink := mocks.NewMockSink(s.mockCtrl)

	s.NoError(Multi(sink).Publish(s.ctx, nil))
}

func TestNotifierSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}
