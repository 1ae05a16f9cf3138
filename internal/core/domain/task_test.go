package domain

import (
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TaskTestSuite struct {
	suite.Suite
	clock time.Time
}

func (s *TaskTestSuite) SetupTest() {
	s.clock = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	now = func() time.Time { return s.clock }
}

func (s *TaskTestSuite) TearDownTest() {
	now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
}

func (s *TaskTestSuite) advance(d time.Duration) {
	s.clock = s.clock.Add(d)
}

func TestTaskTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskTestSuite))
}

func ptr[T any](v T) *T { return &v }

func (s *TaskTestSuite) TestNewTask_Defaults() {
	due := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	task, err := NewTask("Write report", ptr("quarterly"), &due)

	Expect(err).ToNot(HaveOccurred())
	Expect(task.ID().String()).ToNot(BeEmpty())
	Expect(task.Title()).To(Equal("Write report"))
	Expect(*task.Description()).To(Equal("quarterly"))
	Expect(task.IsCompleted()).To(BeFalse())
	Expect(task.DueDate().Equal(due)).To(BeTrue())
	Expect(task.CreatedAt()).To(Equal(task.UpdatedAt()))
	Expect(task.CreatedAt().Location()).To(Equal(time.UTC))
}

func (s *TaskTestSuite) TestNewTask_BlankTitle() {
	for _, title := range []string{"", " ", "\t\n"} {
		task, err := NewTask(title, nil, nil)

		assert.Nil(s.T(), task)
		assert.True(s.T(), IsValidation(err), "title %q", title)
		assert.Equal(s.T(), "title", FieldOf(err))
	}
}

func (s *TaskTestSuite) TestNewTask_LengthLimits() {
	_, err := NewTask(strings.Repeat("a", TitleMaxLength), nil, nil)
	Expect(err).ToNot(HaveOccurred())

	_, err = NewTask(strings.Repeat("a", TitleMaxLength+1), nil, nil)
	Expect(IsValidation(err)).To(BeTrue())

	_, err = NewTask("ok", ptr(strings.Repeat("d", DescriptionMaxLength+1)), nil)
	Expect(IsValidation(err)).To(BeTrue())
	Expect(FieldOf(err)).To(Equal("description"))
}

func (s *TaskTestSuite) TestSetTitle_RejectsBlank() {
	task, _ := NewTask("original", nil, nil)
	s.advance(time.Minute)

	err := task.SetTitle("   ")

	Expect(IsValidation(err)).To(BeTrue())
	Expect(task.Title()).To(Equal("original"))
	Expect(task.UpdatedAt()).To(Equal(task.CreatedAt()))
}

func (s *TaskTestSuite) TestSetters_RefreshUpdatedAt() {
	task, _ := NewTask("original", nil, nil)
	created := task.CreatedAt()

	s.advance(time.Minute)
	Expect(task.SetTitle("renamed")).To(Succeed())
	Expect(task.UpdatedAt()).To(Equal(created.Add(time.Minute)))

	s.advance(time.Minute)
	task.MarkCompleted()
	Expect(task.IsCompleted()).To(BeTrue())
	Expect(task.UpdatedAt()).To(Equal(created.Add(2 * time.Minute)))

	s.advance(time.Minute)
	task.MarkIncomplete()
	Expect(task.IsCompleted()).To(BeFalse())
	Expect(task.UpdatedAt()).To(Equal(created.Add(3 * time.Minute)))
	Expect(task.CreatedAt()).To(Equal(created))
}

func (s *TaskTestSuite) TestUpdate_OnlyCompletion() {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	task, _ := NewTask("title", ptr("desc"), &due)
	s.advance(time.Second)

	err := task.Update(TaskChanges{IsCompleted: ptr(true)})

	Expect(err).ToNot(HaveOccurred())
	Expect(task.IsCompleted()).To(BeTrue())
	Expect(task.Title()).To(Equal("title"))
	Expect(*task.Description()).To(Equal("desc"))
	Expect(task.DueDate().Equal(due)).To(BeTrue())
	Expect(task.UpdatedAt().After(task.CreatedAt())).To(BeTrue())
}

func (s *TaskTestSuite) TestUpdate_BlankTitleIgnored() {
	task, _ := NewTask("keep me", nil, nil)

	err := task.Update(TaskChanges{Title: ptr("  "), Description: ptr("new")})

	Expect(err).ToNot(HaveOccurred())
	Expect(task.Title()).To(Equal("keep me"))
	Expect(*task.Description()).To(Equal("new"))
}

func (s *TaskTestSuite) TestUpdate_TooLongTitle() {
	task, _ := NewTask("keep me", nil, nil)

	err := task.Update(TaskChanges{Title: ptr(strings.Repeat("x", TitleMaxLength+1))})

	Expect(IsValidation(err)).To(BeTrue())
	Expect(task.Title()).To(Equal("keep me"))
}

func (s *TaskTestSuite) TestRestoreTask_SkipsValidation() {
	record := TaskRecord{
		Title:     "",
		CreatedAt: s.clock,
		UpdatedAt: s.clock.Add(time.Hour),
	}

	task := RestoreTask(record)

	Expect(task.Title()).To(BeEmpty())
	Expect(task.Record()).To(Equal(record))
}

func (s *TaskTestSuite) TestAccessorsReturnCopies() {
	task, _ := NewTask("title", ptr("desc"), nil)

	*task.Description() = "mutated"

	Expect(*task.Description()).To(Equal("desc"))
}

func TestTaskFilter_DueWindow(t *testing.T) {
	RegisterTestingT(t)

	day := time.Date(2024, 1, 15, 18, 45, 0, 0, time.UTC)
	filter := TaskFilter{DueDate: &day}

	from, to, ok := filter.DueWindow()

	Expect(ok).To(BeTrue())
	Expect(from).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	Expect(to).To(Equal(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))

	_, _, ok = TaskFilter{}.DueWindow()
	Expect(ok).To(BeFalse())
}

func TestTaskFilter_DueWindow_UsesUTCDay(t *testing.T) {
	RegisterTestingT(t)

	eastern := time.FixedZone("EST", -5*60*60)
	late := time.Date(2024, 1, 15, 23, 0, 0, 0, eastern)

	from, to, ok := TaskFilter{DueDate: &late}.DueWindow()

	Expect(ok).To(BeTrue())
	Expect(from).To(Equal(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))
	Expect(to).To(Equal(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)))
}
