package messaging

import (
	"context"
	"testing"

	diceMocks "github.com/KirkDiggler/similarium/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *diceMocks.MockRoller
	service    Service
	ctx        context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := NewService(&ServiceConfig{Roller: s.mockRoller})
	s.Require().NoError(err)
	s.service = svc
}

func (s *MessagingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMessagingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestMilestoneMessagesMentionUserAndWord() {
	for _, bucket := range []int{1000, 100, 10} {
		for i := 0; i < 3; i++ {
			s.mockRoller.EXPECT().Intn(3).Return(i)

			out, err := s.service.GetMilestoneMessage(s.ctx, &GetMilestoneMessageInput{
				Bucket: bucket,
				UserID: "U123",
				Word:   "vehicle",
				Rank:   3,
			})
			s.Require().NoError(err)
			s.Contains(out.Message, "<@U123>")
			s.Contains(out.Message, "*vehicle*")
			s.Contains(out.Message, "3")
			s.NotContains(out.Message, "%!")
			s.Equal(ToneCelebration, out.Tone)
		}
	}
}

func (s *MessagingServiceTestSuite) TestFirstWinMessage() {
	for i := 0; i < 3; i++ {
		s.mockRoller.EXPECT().Intn(3).Return(i)

		out, err := s.service.GetWinMessage(s.ctx, &GetWinMessageInput{
			UserID:   "U123",
			Secret:   "car",
			Sequence: 42,
			Place:    1,
		})
		s.Require().NoError(err)
		s.Contains(out.Message, "<@U123>")
		s.Contains(out.Message, "*car*")
		s.Contains(out.Message, "42")
		s.NotContains(out.Message, "%!")
	}
}

func (s *MessagingServiceTestSuite) TestLaterWinMessageHidesSecret() {
	s.mockRoller.EXPECT().Intn(2).Return(1)

	out, err := s.service.GetWinMessage(s.ctx, &GetWinMessageInput{
		UserID:   "U456",
		Secret:   "car",
		Sequence: 50,
		Place:    2,
	})
	s.Require().NoError(err)
	s.Contains(out.Message, "<@U456>")
	s.NotContains(out.Message, "car")
	s.Equal(ToneEncouraging, out.Tone)
}

func (s *MessagingServiceTestSuite) TestTauntMessage() {
	for i := 0; i < 4; i++ {
		s.mockRoller.EXPECT().Intn(4).Return(i)

		out, err := s.service.GetTauntMessage(s.ctx, &GetTauntMessageInput{
			GuessCount: 87,
			TopWord:    "airplane",
			TopRank:    5000,
		})
		s.Require().NoError(err)
		s.Contains(out.Message, "87")
		s.Contains(out.Message, "*airplane*")
		s.Contains(out.Message, "5000")
		s.NotContains(out.Message, "%!")
		s.Equal(ToneSarcastic, out.Tone)
	}
}

func (s *MessagingServiceTestSuite) TestGameEndedMessage() {
	out, err := s.service.GetGameEndedMessage(s.ctx, &GetGameEndedMessageInput{
		PuzzleNumber: 12,
		Secret:       "car",
		GuessCount:   30,
	})
	s.Require().NoError(err)
	s.Contains(out.Message, "#12")
	s.Contains(out.Message, "Nobody")

	out, err = s.service.GetGameEndedMessage(s.ctx, &GetGameEndedMessageInput{
		PuzzleNumber: 12,
		Secret:       "car",
		GuessCount:   30,
		WinnerCount:  2,
	})
	s.Require().NoError(err)
	s.Contains(out.Message, "found by 2")
}

func (s *MessagingServiceTestSuite) TestNilInput() {
	_, err := s.service.GetMilestoneMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetWinMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetTauntMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetGameEndedMessage(s.ctx, nil)
	s.Error(err)
}
