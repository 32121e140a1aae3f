package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"skillmuse/internal/models"
)

// memory is a map-backed store used for tests and for running without a
// database. Listings come back newest first, matching the SQL repos.
type memory struct {
	mu           sync.Mutex
	skills       map[string]models.Skill
	content      map[string]models.SkillContent
	skillLessons map[string]models.SkillLesson
	lessons      map[string]models.Lesson
	quizResults  map[string]models.QuizResult
	groups       map[string]models.Group
	members      map[string][]models.GroupMember
	progress     map[string]models.Progress
	llmCalls     []LLMCallRecord
	seq          int64
}

func newMemory() *memory {
	return &memory{
		skills:       map[string]models.Skill{},
		content:      map[string]models.SkillContent{},
		skillLessons: map[string]models.SkillLesson{},
		lessons:      map[string]models.Lesson{},
		quizResults:  map[string]models.QuizResult{},
		groups:       map[string]models.Group{},
		members:      map[string][]models.GroupMember{},
		progress:     map[string]models.Progress{},
	}
}

// now returns strictly increasing timestamps so same-instant inserts still
// sort deterministically.
func (m *memory) now() time.Time {
	m.seq++
	return time.Now().UTC().Add(time.Duration(m.seq) * time.Microsecond)
}

func (m *memory) CreateSkill(_ context.Context, s models.Skill) (models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = m.now()
	if s.LearningOutcomes == nil {
		s.LearningOutcomes = []string{}
	}
	m.skills[s.ID] = s
	return s, nil
}

func (m *memory) ListSkills(_ context.Context, userID string) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Skill, 0)
	for _, s := range m.skills {
		if s.CreatedByUserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) GetSkill(_ context.Context, userID, id string) (models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skills[id]
	if !ok || s.CreatedByUserID != userID {
		return models.Skill{}, ErrNotFound
	}
	return s, nil
}

func (m *memory) DeleteSkill(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skills[id]
	if !ok || s.CreatedByUserID != userID {
		return ErrNotFound
	}
	delete(m.skills, id)
	for cid, c := range m.content {
		if c.SkillID == id {
			delete(m.content, cid)
		}
	}
	for lid, l := range m.skillLessons {
		if l.SkillID == id {
			delete(m.skillLessons, lid)
		}
	}
	return nil
}

func (m *memory) CreateContent(_ context.Context, c models.SkillContent) (models.SkillContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = m.now()
	m.content[c.ID] = c
	return c, nil
}

func (m *memory) ListContentBySkill(_ context.Context, userID, skillID string) ([]models.SkillContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SkillContent, 0)
	for _, c := range m.content {
		if c.CreatedByUserID == userID && c.SkillID == skillID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) CreateSkillLesson(_ context.Context, l models.SkillLesson) (models.SkillLesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = m.now()
	if l.LearningOutcomes == nil {
		l.LearningOutcomes = []string{}
	}
	m.skillLessons[l.ID] = l
	return l, nil
}

func (m *memory) ListSkillLessons(_ context.Context, userID, skillID string) ([]models.SkillLesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SkillLesson, 0)
	for _, l := range m.skillLessons {
		if l.CreatedByUserID == userID && l.SkillID == skillID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) GetSkillLesson(_ context.Context, userID, skillID, id string) (models.SkillLesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.skillLessons[id]
	if !ok || l.CreatedByUserID != userID || l.SkillID != skillID {
		return models.SkillLesson{}, ErrNotFound
	}
	return l, nil
}

func (m *memory) CreateLesson(_ context.Context, l models.Lesson) (models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = m.now()
	m.lessons[l.ID] = l
	return l, nil
}

func (m *memory) ListLessons(_ context.Context, userID string) ([]models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Lesson, 0)
	for _, l := range m.lessons {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) GetLesson(_ context.Context, userID, id string) (models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok || l.UserID != userID {
		return models.Lesson{}, ErrNotFound
	}
	return l, nil
}

func (m *memory) CreateQuizResult(_ context.Context, r models.QuizResult) (models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.CreatedAt = m.now()
	if r.Answers == nil {
		r.Answers = []int{}
	}
	m.quizResults[r.ID] = r
	return r, nil
}

func (m *memory) ListQuizResults(_ context.Context, userID, lessonID string) ([]models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.QuizResult, 0)
	for _, r := range m.quizResults {
		if r.UserID == userID && r.LessonID == lessonID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) CreateGroup(_ context.Context, g models.Group) (models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.CreatedAt = m.now()
	m.groups[g.ID] = g
	return g, nil
}

func (m *memory) ListGroups(_ context.Context, userID string) ([]models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Group, 0)
	for _, g := range m.groups {
		if g.CreatedByUserID == userID {
			out = append(out, g)
			continue
		}
		for _, member := range m.members[g.ID] {
			if member.UserID == userID {
				out = append(out, g)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memory) AddGroupMember(_ context.Context, member models.GroupMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[member.GroupID]; !ok {
		return ErrNotFound
	}
	member.CreatedAt = m.now()
	existing := m.members[member.GroupID]
	for i, cur := range existing {
		if cur.UserID == member.UserID {
			existing[i].Role = member.Role
			return nil
		}
	}
	m.members[member.GroupID] = append(existing, member)
	return nil
}

func (m *memory) UpsertProgress(_ context.Context, p models.Progress) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := p.UserID + "/" + p.LessonID
	if prev, ok := m.progress[key]; ok {
		if p.QuizScore == nil {
			p.QuizScore = prev.QuizScore
		}
		if p.CompletedAt == nil {
			p.CompletedAt = prev.CompletedAt
		}
	}
	p.UpdatedAt = m.now()
	m.progress[key] = p
	return p, nil
}

func (m *memory) InsertLLMCall(_ context.Context, rec LLMCallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.llmCalls = append(m.llmCalls, rec)
	return nil
}
