// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "solerack")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "solerack.log")

	viper.SetDefault("import.enabled", true)
	viper.SetDefault("import.dropdir", "shoes/")
	viper.SetDefault("import.uploaddir", "uploads/")
	viper.SetDefault("import.interval", 10*time.Second)
	viper.SetDefault("import.settle", 5*time.Second)
	viper.SetDefault("import.batchsize", 50)
	viper.SetDefault("import.batchpause", 1*time.Second)
	viper.SetDefault("import.similaritythreshold", 0.85)
	viper.SetDefault("import.minimages", 1)
	viper.SetDefault("import.ledgerpath", ".processed-images.json")
	viper.SetDefault("import.defaultmsrp", 120)
	viper.SetDefault("import.defaultprice", 100)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "solerack.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "solerack")
	viper.SetDefault("output.mysql.password", "solerack")
	viper.SetDefault("output.mysql.database", "solerack")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.listen", "0.0.0.0:8090")
}
