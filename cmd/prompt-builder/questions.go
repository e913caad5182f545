package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default column selection and question texts for the Afrobarometer Ghana
// Round 9 instrument. Override with -demo-columns / -resp-columns /
// -questions-file for other waves.
const defaultDemoColumns = "RESPNO, URBRUR, REGION, Q1, Q100, Q101, Q2, Q94, Q95, Q84A, Q93A, Q93B, EA_SVC_A, EA_SVC_B, EA_SVC_C, EA_SVC_D, EA_FAC_D, Q91A, Q92A, Q90F, Q90G, Q4B, Q89A, Q89B, Q96, Q4A, Q8"

const defaultRespColumns = "Q6C, Q41A, Q41B, Q41C, Q41D, Q41G, Q45PT1, Q57A, Q57B, Q58A, Q58B, Q58C, Q59, Q7A, Q7B, Q9A, Q9B, Q9C, Q11B, Q11C, Q11D, Q11E, Q31, Q33D, Q33E, Q33I, Q83C_GHA, Q86A, Q86B, Q86C, Q86D, Q86E, Q86F, Q90I"

// defaultQuestionTexts annotates defaultRespColumns positionally.
var defaultQuestionTexts = []string{
	"Over the past year, how often, if ever, have you or anyone in your family gone without medicines or medical treatment?",
	"In the past 12 months, have you had contact with a public clinic or hospital?",
	"How easy or difficult was it to obtain the medical care or services you needed?",
	"How often, if ever, did you have to pay a bribe, give a gift, or do a favor for a health worker or clinic or hospital staff in order to get the medical care or services you needed?",
	"In general, when dealing with health workers and clinic or hospital staff, how much do you feel you can trust them?",
	"How well or badly would you say the current government is improving basic health services, or haven't you heard enough to say?",
	"In your opinion, what are the most important problems facing this country that government should address?",
	"Please tell me whether you personally or any other member of your household have been affected by the COVID-19 pandemic by becoming ill with, or testing positive for, COVID-19?",
	"Please tell me whether you personally or any other member of your household have been affected by the COVID-19 pandemic by temporarily or permanently losing a job, business, or primary source of income?",
	"Have you received a vaccination against COVID-19, either one or two doses?",
	"If a vaccine for COVID-19 is available , how likely are you to try to get vaccinated?",
	"What is the main reason that you would be unlikely to get a COVID-19 vaccine?",
	"How much do you trust the government to ensure that any vaccine for COVID-19 that is developed or offered to Ghanian citizens is safe before it is used in this country?",
	"Over the past year, how often, if ever, have you or anyone in your family felt unsafe walking in your neighbourhood?",
	"Over the past year, how often, if ever, have you or anyone in your family feared crime in your own home?",
	"In this country, how free are you to say what you think?",
	"In this country, how free are you to join any political organization you want?",
	"In this country, how free are you to choose who to vote for without feeling pressured?",
	"During the past year, how often have you contacted any local government councillor about some important problem or to give them your views?",
	"During the past year, how often have you contacted any member of national assembly about some important problem or to give them your views?",
	"During the past year, how often have you contacted any political party official about some important problem or to give them your views?",
	"During the past year, how often have you contacted any traditional leader about some important problem or to give them your views?",
	"Overall, how satisfied are you with the way democracy works in Ghana?",
	"In your opinion, how often, in this country do people have to be careful of what they say about politics?",
	"In your opinion, how often, in this country are people treated unequally under the law?",
	"How often, if ever, are people treated unfairly by the government based on their economic status, that is, how rich or poor they are?",
	"To whom do you normally go to first for assistance, when you are concerned about your security and the security of your family?",
	"How much do you trust other Ghanaians?",
	"How much do you trust your relatives?",
	"How much do you trust your neighbours?",
	"How much do you trust other people you know?",
	"How much do you trust people from othe religions?",
	"How much do you trust people from other ethnic groups?",
	"How often do you use the Internet?",
}

// loadQuestionTexts reads a JSON array of question strings.
func loadQuestionTexts(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadQuestionTexts: read: %w", err)
	}
	var texts []string
	if err := json.Unmarshal(b, &texts); err != nil {
		return nil, fmt.Errorf("loadQuestionTexts: unmarshal %s: %w", path, err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("loadQuestionTexts: %s contains no questions", path)
	}
	return texts, nil
}
