package help

import (
	"fmt"
	"strings"
)

const respondHere = "1. I will respond in the room you messaged me in."

func pegHelp(bot string, s Settings) string {
	msg := "### How to give a peg 🎁!\n" +
		fmt.Sprintf("1. To give someone a peg type: `@%s %s @bob {comment}`.\n", bot, CommandPeg)
	if s.RequireKeywords {
		msg += "1. Note that your comment MUST include a keyword."
	}
	return msg
}

func statusHelp(bot string, _ Settings) string {
	return "### How to check your status 📈!\n" +
		fmt.Sprintf("1. To get a PM type: `@%s %s` OR direct message me with `%s`.\n", bot, CommandStatus, CommandStatus) +
		"1. I will PM you number of pegs you have left and who you gave it to."
}

func keywordsHelp(bot string, _ Settings) string {
	return "### How to check the available keywords 🔑!\n" +
		fmt.Sprintf("1. To get a list of the available keywords, type: `@%s %s` OR direct message me with `%s`.\n", bot, CommandKeywords, CommandKeywords) +
		"1. I will respond in the room you messaged me in with a list of keywords."
}

func pingHelp(bot string, _ Settings) string {
	return "### How to ping me 🏓!\n" +
		fmt.Sprintf("1. To check whether I'm alive, type: `@%s %s` OR direct message me with `%s`.\n", bot, CommandPing, CommandPing) +
		"1. I will respond in the room you messaged me in if I am alive."
}

func welcomeHelp(bot string, _ Settings) string {
	return "### How to welcome someone 👐!\n" +
		fmt.Sprintf("1. To get a welcome message from me, type `@%s %s` OR direct message me with `%s`.\n", bot, CommandWelcome, CommandWelcome) +
		respondHere
}

func rotationHelp(bot string, _ Settings) string {
	return "### How to check the rotation 🔄!\n" +
		fmt.Sprintf("1. To check the rotation of teams responsible for buying snacks, type `@%s %s` OR direct message me with `%s`.\n", bot, CommandRotation, CommandRotation) +
		respondHere
}

func resultsHelp(bot string, _ Settings) string {
	return "### How to display the results 📃!\n" +
		fmt.Sprintf("1. To display results, type `@%s %s`.\n", bot, CommandResults) +
		respondHere
}

func resetHelp(bot string, _ Settings) string {
	return "### How to reset all pegs 🙅!\n" +
		fmt.Sprintf("1. To clear all pegs, type `@%s %s`.\n", bot, CommandReset) +
		respondHere
}

func finishHelp(bot string, _ Settings) string {
	return "### How to complete the cycle 🚲!\n" +
		fmt.Sprintf("1. To display winners and results and clear the database, type `@%s %s`.\n", bot, CommandFinish) +
		respondHere
}

func numberConfigHelp(bot string, _ Settings) string {
	return "### How to configure number config values 🔢!\n" +
		fmt.Sprintf("1. To get/edit/refresh/delete number config values, type `@%s %s %s|%s|%s {name} {number}`\n",
			bot, CommandNumberConfig, ActionGet, ActionAdd, ActionDelete) +
		respondHere
}

func stringConfigHelp(bot string, _ Settings) string {
	return "### How to configure string config values 🎻!\n" +
		fmt.Sprintf("1. To get/add/delete string config values, type `@%s %s %s {name} {value}`\n",
			bot, CommandStringConfig, strings.Join(stringConfigActions, "|")) +
		fmt.Sprintf("    * Example 1: To add a keyword called \"amazing\", type `@%s %s %s keyword amazing`\n",
			bot, CommandStringConfig, ActionAdd) +
		fmt.Sprintf("    * Example 2: To add a linked keyword called \"awesome\" to the \"amazing\" keyword, type `@%s %s %s linkedKeyword amazing:awesome`\n",
			bot, CommandStringConfig, ActionAdd) +
		respondHere
}

func roleConfigHelp(bot string, _ Settings) string {
	return "### How to configure role config values 🗞️!\n" +
		fmt.Sprintf("1. To get/set/delete user roles, type `@%s %s %s|%s|%s {@User} {role}`\n",
			bot, CommandRoleConfig, ActionGet, ActionSet, ActionDelete) +
		respondHere
}

func locationConfigHelp(bot string, _ Settings) string {
	return "### How to configure location config values 🌏!\n" +
		fmt.Sprintf("1. To get/edit/delete locations, type `@%s %s %s|%s|%s {location}`\n",
			bot, CommandLocationConfig, ActionGet, ActionAdd, ActionDelete) +
		respondHere
}

func locationConfigLimitedHelp(bot string) string {
	return "### How to get location values 🌏!\n" +
		fmt.Sprintf("1. To get a list of locations, type `@%s %s %s`\n", bot, CommandLocationConfig, ActionGet) +
		"    * To configure locations, please ask an admin.\n" +
		respondHere
}

func userLocationHelp(bot string, _ Settings) string {
	return "### How to configure user location values!\n" +
		fmt.Sprintf("1. To get user locations for yourself or others, type `@%s %s %s me|all|unset|@User`\n", bot, CommandUserLocation, ActionGet) +
		fmt.Sprintf("1. To set user locations, type `@%s %s %s {location} me|@User1 @User2`\n", bot, CommandUserLocation, ActionSet) +
		fmt.Sprintf("1. To delete user locations, type `@%s %s %s me|@User1 @User2`\n", bot, CommandUserLocation, ActionDelete) +
		respondHere
}

func userLocationLimitedHelp(bot string) string {
	return "### How to config your user location value!\n" +
		fmt.Sprintf("1. To get user locations for yourself or others, type `@%s %s %s me|all|unset|@User`\n", bot, CommandUserLocation, ActionGet) +
		fmt.Sprintf("1. To set your user location, type `@%s %s %s {location} me`\n", bot, CommandUserLocation, ActionSet) +
		"    * To bulk configure user locations, please ask an admin.\n" +
		fmt.Sprintf("1. To delete your user location, type `@%s %s %s me`\n", bot, CommandUserLocation, ActionDelete) +
		respondHere
}

func locationWeightHelp(bot string, _ Settings) string {
	return "### How to configure location weight values ⚖️!\n" +
		fmt.Sprintf("1. To get/edit/delete location weight values, type `@%s %s %s|%s|%s {location1} {location2} {weight}`\n",
			bot, CommandLocationWeight, ActionGet, ActionSet, ActionDelete) +
		respondHere
}

func removeUserHelp(bot string, _ Settings) string {
	return "### How to remove users 🛑!\n" +
		fmt.Sprintf("1. To remove a user, type `@%s %s {@User}|'{username}'`\n", bot, CommandRemoveUser) +
		respondHere
}
