package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
)

// Nombres de archivo dentro del zip de backup.
const (
	backupUsersFile      = "users.json"
	backupActivitiesFile = "activities.json"
	backupFollowupsFile  = "followups.json"
	backupConfigFile     = "config.json"
)

// Backup serializa el almacén completo (las cuatro colecciones) a un
// archivo zip. Solo admin.
func (uc *ExportUseCase) Backup(actor dto.Actor) ([]byte, error) {
	if err := requireAdmin(uc.users, actor); err != nil {
		return nil, err
	}

	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	activities, err := uc.activities.ListAll()
	if err != nil {
		return nil, err
	}
	followups, err := uc.followups.ListAll()
	if err != nil {
		return nil, err
	}
	cfg, err := uc.cfg.Get()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data interface{}
	}{
		{backupUsersFile, users},
		{backupActivitiesFile, activities},
		{backupFollowupsFile, followups},
		{backupConfigFile, cfg},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("crear entrada %s: %w", e.name, err)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(e.data); err != nil {
			return nil, fmt.Errorf("serializar %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Restore reemplaza el almacén completo con el contenido de un zip de
// backup. Es una sustitución total: las colecciones actuales se descartan.
// Solo admin.
func (uc *ExportUseCase) Restore(actor dto.Actor, archive []byte) error {
	if err := requireAdmin(uc.users, actor); err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("leer archivo de backup: %w", err)
	}

	var users []*entity.User
	var activities []*entity.Activity
	var followups []*entity.Followup
	var cfg *entity.AppConfig

	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return err
		}
		switch f.Name {
		case backupUsersFile:
			err = json.Unmarshal(data, &users)
		case backupActivitiesFile:
			err = json.Unmarshal(data, &activities)
		case backupFollowupsFile:
			err = json.Unmarshal(data, &followups)
		case backupConfigFile:
			err = json.Unmarshal(data, &cfg)
		}
		if err != nil {
			return fmt.Errorf("deserializar %s: %w", f.Name, err)
		}
	}

	if err := uc.users.ReplaceAll(users); err != nil {
		return err
	}
	if err := uc.activities.ReplaceAll(activities); err != nil {
		return err
	}
	if err := uc.followups.ReplaceAll(followups); err != nil {
		return err
	}
	if cfg != nil {
		if err := uc.cfg.Save(cfg); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIntegrity recorre las colecciones buscando referencias colgantes:
// follow-ups sin actividad padre y actividades cuyo marketer ya no existe.
// Solo reporta; nunca repara (el estado huérfano es comportamiento
// documentado del tracker).
func (uc *ExportUseCase) ValidateIntegrity(actor dto.Actor) (*dto.IntegrityReport, error) {
	if err := requireAdmin(uc.users, actor); err != nil {
		return nil, err
	}

	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	activities, err := uc.activities.ListAll()
	if err != nil {
		return nil, err
	}
	followups, err := uc.followups.ListAll()
	if err != nil {
		return nil, err
	}

	knownUsers := make(map[string]bool, len(users))
	for _, u := range users {
		knownUsers[u.Username] = true
	}
	knownActivities := make(map[string]bool, len(activities))
	for _, a := range activities {
		knownActivities[a.ID] = true
	}

	var issues []string
	for _, a := range activities {
		if !knownUsers[a.MarketerUsername] {
			issues = append(issues, fmt.Sprintf("actividad %s referencia al usuario inexistente %q", a.ID, a.MarketerUsername))
		}
	}
	for _, f := range followups {
		if !knownActivities[f.ActivityID] {
			issues = append(issues, fmt.Sprintf("follow-up %s referencia a la actividad inexistente %q", f.ID, f.ActivityID))
		}
		if !knownUsers[f.MarketerUsername] {
			issues = append(issues, fmt.Sprintf("follow-up %s referencia al usuario inexistente %q", f.ID, f.MarketerUsername))
		}
	}

	return &dto.IntegrityReport{OK: len(issues) == 0, Issues: issues}, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
