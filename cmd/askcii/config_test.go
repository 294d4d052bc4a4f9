package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kevin-cantwell/askcii"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadConfig", func() {
	var dir string

	write := func(name, contents string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(contents), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "askcii-config")
		Expect(err).NotTo(HaveOccurred())
		os.Unsetenv(tokenEnv)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
		os.Unsetenv(tokenEnv)
	})

	It("uses defaults when no file is present", func() {
		cfg, err := loadConfig("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(defaultConfig()))
		Expect(cfg.Model).To(Equal(askcii.DefaultModel))
		Expect(cfg.Steps).To(Equal(20))
		Expect(cfg.Output).To(Equal("ascii_output.txt"))
	})

	It("layers file values over the defaults", func() {
		path := write("askcii.yaml", `
model: runwayml/stable-diffusion-v1-5
steps: 35
output: art.txt
ramp: "@%+. "
timeout: 45s
`)
		cfg, err := loadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Model).To(Equal("runwayml/stable-diffusion-v1-5"))
		Expect(cfg.Steps).To(Equal(35))
		Expect(cfg.Output).To(Equal("art.txt"))
		Expect(cfg.Ramp).To(Equal("@%+. "))
		Expect(cfg.Timeout).To(Equal(45 * time.Second))
		Expect(cfg.Endpoint).To(Equal(askcii.DefaultEndpoint))
	})

	It("takes the token from the environment", func() {
		path := write("askcii.yaml", "token: from-file\n")
		os.Setenv(tokenEnv, "from-env")
		cfg, err := loadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Token).To(Equal("from-env"))
	})

	It("fails on a missing explicit file", func() {
		_, err := loadConfig(filepath.Join(dir, "nope.yaml"))
		Expect(err).To(HaveOccurred())
	})

	It("fails on unknown keys", func() {
		_, err := loadConfig(write("bad.yaml", "modle: typo\n"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects unusable values on validation", func() {
		cfg, err := loadConfig(write("steps.yaml", "steps: 0\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.validate()).To(MatchError(ContainSubstring("steps must be positive")))

		cfg, err = loadConfig(write("ramp.yaml", "ramp: \"\"\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.validate()).To(MatchError(askcii.ErrInvalidRamp))
	})

	It("lets flags override bad file values before validation", func() {
		cfg, err := loadConfig(write("steps.yaml", "steps: 0\noutput: file.txt\n"))
		Expect(err).NotTo(HaveOccurred())

		applyFlags(fakeFlags{"steps": 10}, &cfg)
		Expect(cfg.validate()).To(Succeed())
		Expect(cfg.Steps).To(Equal(10))
		Expect(cfg.Output).To(Equal("file.txt"))
	})

	It("only overrides flags that were set", func() {
		cfg := defaultConfig()
		applyFlags(fakeFlags{"model": "org/other", "output": "x.txt"}, &cfg)
		Expect(cfg.Model).To(Equal("org/other"))
		Expect(cfg.Output).To(Equal("x.txt"))
		Expect(cfg.Steps).To(Equal(askcii.DefaultSteps))
	})
})

// fakeFlags stands in for *cli.Context; keys present count as set.
type fakeFlags map[string]interface{}

func (f fakeFlags) IsSet(name string) bool {
	_, ok := f[name]
	return ok
}

func (f fakeFlags) String(name string) string {
	s, _ := f[name].(string)
	return s
}

func (f fakeFlags) Int(name string) int {
	n, _ := f[name].(int)
	return n
}
