package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maxaizer/job-board/internal/logger"
	"github.com/maxaizer/job-board/internal/repositories"
	"github.com/maxaizer/job-board/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const photoUploadFailed = "failed to upload photo"

func (s *Server) hello(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Hello World!")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Health.Ping(r.Context()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("health check failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, ErrCodeDatabase, "database is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.services.Users.GetAll(r.Context())
	if err != nil {
		s.storeError(w, err, "list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize()+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "expected multipart form with name, email and photo")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	request := registerUserRequest{Name: r.FormValue("name"), Email: r.FormValue("email")}
	if err := validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidationFailed, validationMessage(err))
		return
	}

	photo, _, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidationFailed, "photo: file is required")
		return
	}
	defer photo.Close()

	user, err := s.services.Users.Register(r.Context(), request.Name, request.Email, photo)
	switch {
	case errors.Is(err, services.ErrUnsupportedPhoto), errors.Is(err, services.ErrPhotoTooLarge):
		writeError(w, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	case errors.Is(err, services.ErrUploadFailed):
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMediaApi).Errorf("photo upload for %s failed: %v", request.Email, err)
		writeText(w, http.StatusInternalServerError, photoUploadFailed)
		return
	case err != nil:
		s.storeError(w, err, "register user")
		return
	}

	writeJSON(w, http.StatusCreated, insertAck{Acknowledged: true, InsertedID: user.ID})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Jobs.Find(r.Context(), services.JobFilterFromQuery(r.URL.Query()))
	if err != nil {
		s.storeError(w, err, "list jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	job, err := s.services.Jobs.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "get job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var request createJobRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	job := request.toJobPosting()
	if err := s.services.Jobs.Create(r.Context(), job); err != nil {
		s.storeError(w, err, "create job")
		return
	}
	writeJSON(w, http.StatusCreated, insertAck{Acknowledged: true, InsertedID: job.ID})
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request updateJobRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	fields := request.fields()
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, ErrCodeValidationFailed, "no fields to update")
		return
	}

	matched, modified, err := s.services.Jobs.Update(r.Context(), id, fields)
	if err != nil {
		s.storeError(w, err, "update job")
		return
	}
	writeJSON(w, http.StatusOK, updateAck{
		Acknowledged:  true,
		MatchedCount:  boolToCount(matched),
		ModifiedCount: boolToCount(modified),
	})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.services.Jobs.Delete(r.Context(), id); err != nil {
		s.storeError(w, err, "delete job")
		return
	}
	writeJSON(w, http.StatusOK, deleteAck{Acknowledged: true, DeletedCount: 1})
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.services.Applications.Find(r.Context(), services.ApplicationFilterFromQuery(r.URL.Query()))
	if err != nil {
		s.storeError(w, err, "list applications")
		return
	}
	writeJSON(w, http.StatusOK, applications)
}

func (s *Server) applyToJob(w http.ResponseWriter, r *http.Request) {
	var request applyRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	if err := s.services.Applications.Submit(r.Context(), request.toApplication()); err != nil {
		s.storeError(w, err, "submit application")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "malformed id: "+id)
		return "", false
	}
	return canonicalID(id), true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r.Body, dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

func (s *Server) storeError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
		return
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("%s: %v", operation, err)
	writeError(w, http.StatusInternalServerError, ErrCodeDatabase, "database operation failed")
}
