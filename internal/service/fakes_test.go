package service

import (
	"context"
	"errors"
	"sync"

	"github.com/arturoeanton/postpilot/internal/domain"
)

type fakeAuthProvider struct {
	pair        *domain.TokenPair
	exchangeErr error
	userID      string
	userErr     error
	userCalls   int
}

func (p *fakeAuthProvider) ProviderName() string { return "fake" }

func (p *fakeAuthProvider) AuthURL(state string) string {
	return "https://auth.example/authorize?state=" + state
}

func (p *fakeAuthProvider) ExchangeCode(_ context.Context, _ string) (*domain.TokenPair, error) {
	return p.pair, p.exchangeErr
}

func (p *fakeAuthProvider) UserID(_ context.Context, _ string) (string, error) {
	p.userCalls++
	return p.userID, p.userErr
}

type memStore struct {
	mu      sync.Mutex
	tok     *domain.Token
	saves   int
	loadErr error
}

func (s *memStore) Load(_ context.Context) (*domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.tok == nil {
		return nil, nil
	}
	cp := *s.tok
	return &cp, nil
}

func (s *memStore) Save(_ context.Context, tok *domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tok
	s.tok = &cp
	s.saves++
	return nil
}

type fakePlatform struct {
	ticket      *domain.UploadTicket
	registerErr error
	uploadErr   error
	createErr   error
	result      *domain.PublishResult

	registerCalls int
	uploadCalls   int
	createCalls   int
	uploaded      []byte
	posted        *domain.UGCPost
	postedWith    string
}

func (p *fakePlatform) RegisterUpload(_ context.Context, _, _ string) (*domain.UploadTicket, error) {
	p.registerCalls++
	return p.ticket, p.registerErr
}

func (p *fakePlatform) UploadImage(_ context.Context, _, _ string, data []byte) error {
	p.uploadCalls++
	p.uploaded = data
	return p.uploadErr
}

func (p *fakePlatform) CreatePost(_ context.Context, accessToken string, post domain.UGCPost) (*domain.PublishResult, error) {
	p.createCalls++
	p.posted = &post
	p.postedWith = accessToken
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.result, nil
}

func (p *fakePlatform) calls() int {
	return p.registerCalls + p.uploadCalls + p.createCalls
}

type fakeLoader struct {
	data []byte
	err  error
}

func (l fakeLoader) Load(context.Context, string) ([]byte, error) {
	return l.data, l.err
}

type fakeAI struct {
	out     string
	err     error
	prompts []string
}

func (a *fakeAI) ModelName() string { return "fake-model" }

func (a *fakeAI) Chat(_ context.Context, _ string, userPrompt string) (string, error) {
	a.prompts = append(a.prompts, userPrompt)
	return a.out, a.err
}

type fakeAnalyzer struct {
	info *domain.ContentInfo
	err  error
}

func (a fakeAnalyzer) Analyze(context.Context, string) (*domain.ContentInfo, error) {
	return a.info, a.err
}

type fakeImages struct {
	url    string
	err    error
	topics []string
}

func (i *fakeImages) FindImage(_ context.Context, topic string) (string, error) {
	i.topics = append(i.topics, topic)
	return i.url, i.err
}

var errBoom = errors.New("boom")
