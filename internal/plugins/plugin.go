package plugins

import (
	"fmt"
	"os"
	"strings"
)

const AnswerReset = "reset"

// Plugin is anything configured from environment variables, such as an AI vendor or a storage backend.
type Plugin interface {
	GetName() string
	GetSetupDescription() string
	IsConfigured() bool
	Configure() error
}

// PluginBase holds the shared name, env prefix and setup questions of a plugin.
type PluginBase struct {
	Name             string
	SetupDescription string
	EnvNamePrefix    string
	SetupQuestions   []*SetupQuestion

	ConfigureCustom func() error
}

func (o *PluginBase) GetName() string {
	return o.Name
}

func (o *PluginBase) GetSetupDescription() (ret string) {
	if ret = o.SetupDescription; ret == "" {
		ret = o.GetName()
	}
	return
}

func (o *PluginBase) AddSetupQuestion(name string, required bool) (ret *SetupQuestion) {
	return o.AddSetupQuestionCustom(name, required, "")
}

func (o *PluginBase) AddSetupQuestionCustom(name string, required bool, question string) (ret *SetupQuestion) {
	setting := o.AddSetting(name, required)
	if question == "" {
		question = fmt.Sprintf("Enter your %v %v", o.Name, strings.ToUpper(name))
	}
	ret = &SetupQuestion{Setting: setting, Question: question}
	o.SetupQuestions = append(o.SetupQuestions, ret)
	return
}

func (o *PluginBase) AddSetting(name string, required bool) *Setting {
	return &Setting{
		EnvVariable: o.BuildEnvVariable(name),
		Required:    required,
	}
}

func (o *PluginBase) BuildEnvVariable(name string) string {
	return o.EnvNamePrefix + BuildEnvVariable(name)
}

// Configure loads every setting from the environment, then runs ConfigureCustom.
func (o *PluginBase) Configure() (err error) {
	for _, question := range o.SetupQuestions {
		question.Configure()
	}
	if err = o.IsConfiguredErr(); err != nil {
		return
	}
	if o.ConfigureCustom != nil {
		err = o.ConfigureCustom()
	}
	return
}

func (o *PluginBase) IsConfigured() bool {
	return o.IsConfiguredErr() == nil
}

func (o *PluginBase) IsConfiguredErr() error {
	var missing []string
	for _, question := range o.SetupQuestions {
		if !question.IsValid() {
			missing = append(missing, question.EnvVariable)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is not configured, set %s", o.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Setting is a single plugin value backed by an environment variable.
type Setting struct {
	EnvVariable string
	Value       string
	Required    bool
}

func (o *Setting) IsValid() bool {
	return !o.Required || strings.TrimSpace(o.Value) != ""
}

func (o *Setting) Configure() {
	if envValue := os.Getenv(o.EnvVariable); envValue != "" {
		o.Value = envValue
	}
}

type SetupQuestion struct {
	*Setting
	Question string
}

// OnAnswer stores an interactive answer; "reset" clears the value.
func (o *SetupQuestion) OnAnswer(answer string) {
	if answer == AnswerReset {
		o.Value = ""
		return
	}
	if answer != "" {
		o.Value = answer
	}
}

func BuildEnvVariablePrefix(name string) (ret string) {
	ret = BuildEnvVariable(name)
	if ret != "" {
		ret += "_"
	}
	return
}

func BuildEnvVariable(name string) string {
	name = strings.TrimSpace(name)
	return strings.ReplaceAll(strings.ToUpper(name), " ", "_")
}
