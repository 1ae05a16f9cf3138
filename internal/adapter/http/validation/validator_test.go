package validation_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"taskapi/internal/adapter/http/validation"
	"taskapi/internal/core/model/request"
)

func TestValidateStruct_SignUp(t *testing.T) {
	RegisterTestingT(t)
	v := validation.New()

	err := v.ValidateStruct(request.SignUpRequest{Username: "al", Password: ""})
	Expect(err).NotTo(BeNil())

	errs := v.FormatValidationErrors(err)
	Expect(errs).To(HaveLen(2))
	Expect(errs[0].Field).To(Equal("username"))
	Expect(errs[0].Message).To(Equal("username must be at least 3 characters long"))
	Expect(errs[1].Field).To(Equal("password"))
	Expect(errs[1].Message).To(Equal("password is a required field"))

	Expect(v.ValidateStruct(request.SignUpRequest{Username: "alice", Password: "secret1"})).To(Succeed())
}

func TestValidateStruct_CreateTask(t *testing.T) {
	RegisterTestingT(t)
	v := validation.New()
	long := strings.Repeat("d", 1001)

	err := v.ValidateStruct(request.CreateTaskRequest{Title: "ok", Description: &long})

	errs := v.FormatValidationErrors(err)
	Expect(errs).To(HaveLen(1))
	Expect(errs[0].Field).To(Equal("description"))
}

func TestFormatValidationErrors_OtherError(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.FormatValidationErrors(nil)).To(BeEmpty())
}
