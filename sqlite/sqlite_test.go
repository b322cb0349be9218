package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/onbuch/tutor"
	"github.com/onbuch/tutor/sqlite"
)

var _ = Describe("DB", func() {
	var (
		db  *sqlite.DB
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = sqlite.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("Open", func() {
		It("creates the database file and parent directories", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "nested", "onbuch.db")

			fileDB, err := sqlite.Open(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer fileDB.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps settings across reopen", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "onbuch.db")

			first, err := sqlite.Open(dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.PutSetting(ctx, tutor.SettingAPIKey, "persisted")).To(Succeed())
			Expect(first.Close()).To(Succeed())

			second, err := sqlite.Open(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer second.Close()

			v, err := second.Setting(ctx, tutor.SettingAPIKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("persisted"))
		})
	})

	Describe("Setting", func() {
		It("returns ErrSettingNotFound for unknown keys", func() {
			_, err := db.Setting(ctx, "ai.unknown")
			Expect(err).To(MatchError(tutor.ErrSettingNotFound))
		})

		It("returns the stored value", func() {
			Expect(db.PutSetting(ctx, tutor.SettingTutorInstruction, "Sois patient.")).To(Succeed())

			v, err := db.Setting(ctx, tutor.SettingTutorInstruction)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("Sois patient."))
		})
	})

	Describe("PutSetting", func() {
		It("replaces an existing value", func() {
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "old")).To(Succeed())
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "new")).To(Succeed())

			v, err := db.Setting(ctx, tutor.SettingAPIKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("new"))
		})

		It("rejects an empty key", func() {
			err := db.PutSetting(ctx, "", "value")
			Expect(err).To(MatchError(tutor.ErrValidation))
		})

		It("records the update time", func() {
			at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
			db.SetNowForTest(func() time.Time { return at })
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "k")).To(Succeed())

			all, err := db.Settings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].UpdatedAt).To(BeTemporally("==", at))
		})
	})

	Describe("DeleteSetting", func() {
		It("removes the key", func() {
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "k")).To(Succeed())
			Expect(db.DeleteSetting(ctx, tutor.SettingAPIKey)).To(Succeed())

			_, err := db.Setting(ctx, tutor.SettingAPIKey)
			Expect(err).To(MatchError(tutor.ErrSettingNotFound))
		})

		It("returns ErrSettingNotFound for a missing key", func() {
			err := db.DeleteSetting(ctx, "ai.unknown")
			Expect(err).To(MatchError(tutor.ErrSettingNotFound))
		})
	})

	Describe("Settings", func() {
		It("is empty for a new database", func() {
			all, err := db.Settings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("lists settings ordered by key", func() {
			Expect(db.PutSetting(ctx, tutor.SettingTutorInstruction, "t")).To(Succeed())
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "k")).To(Succeed())
			Expect(db.PutSetting(ctx, tutor.SettingAssistantInstruction, "a")).To(Succeed())

			all, err := db.Settings(ctx)
			Expect(err).NotTo(HaveOccurred())
			keys := make([]string, len(all))
			for i, s := range all {
				keys[i] = s.Key
			}
			Expect(keys).To(Equal([]string{
				tutor.SettingAssistantInstruction,
				tutor.SettingAPIKey,
				tutor.SettingTutorInstruction,
			}))
		})
	})

	Describe("as the tutor settings source", func() {
		It("feeds the stored key to tutor.Settings ahead of the environment", func() {
			Expect(db.PutSetting(ctx, tutor.SettingAPIKey, "from-db")).To(Succeed())

			s := tutor.NewSettings(db, tutor.TutorProfile, tutor.WithEnvAPIKey("from-env"))
			key, err := s.APIKey(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("from-db"))
		})
	})
})
