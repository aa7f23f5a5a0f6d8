package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/utexo-io/rgb-bridge-go/cmd"
	"github.com/utexo-io/rgb-bridge-go/logconfig"
)

const (
	ENV_CONFIG_FILE_PATH = "COORDINATOR_CONFIG"
)

func main() {
	// Tool to read environment variables
	viper.AutomaticEnv()

	// Accessing an environment variable of configuration file location.
	_config_file := viper.GetString(ENV_CONFIG_FILE_PATH)
	fmt.Printf("Coordinator configuration file = %s\n", _config_file)

	// See if file exists
	if !cmd.FileExists(_config_file) {
		fmt.Printf("Coordinator configuration file not found: %s\n", _config_file)
		return
	}

	// Read from config file.
	success := initializeViper(_config_file)
	if !success {
		return
	}

	logconfig.ConfigByName(viper.GetString("LOG_PROFILE"))

	// Make the configuration
	cc := PrepareCoordinatorConfig()

	fmt.Println("Starting coordinator server... press Ctrl+C to kill the server")
	// Start server and block.
	cmd.StartCoordinatorServerAndWait(cc)
}

func initializeViper(filePath string) bool {
	viper.SetConfigFile(filePath)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Error reading configuration file, %s", err)
		return false
	}
	return true
}

// PrepareCoordinatorConfig reads configuration variables and returns a CoordinatorConfig.
func PrepareCoordinatorConfig() *cmd.CoordinatorConfig {
	return &cmd.CoordinatorConfig{
		// local wallet side
		Network:        viper.GetString("NETWORK"),
		NodeUrl:        viper.GetString("NODE_URL"),
		SenderAddress:  viper.GetString("SENDER_ADDRESS"),
		SignerMnemonic: viper.GetString("SIGNER_MNEMONIC"),
		// bridge side
		BridgeUrl: viper.GetString("BRIDGE_URL"),
		// request db side
		DbFilePath: viper.GetString("DB_FILE_PATH"),
		// Http side
		HttpIp:   viper.GetString("HTTP_IP"),
		HttpPort: viper.GetString("HTTP_PORT"),
	}
}
